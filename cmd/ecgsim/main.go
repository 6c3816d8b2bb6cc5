// Command ecgsim emits a synthetic ECG sample stream in the same
// one-value-per-line format produced by the sensor firmware. It is meant
// for exercising the analysis tool without hardware, either by writing a
// recording file or by streaming paced samples to stdout.
//
// Usage:
//
//	ecgsim [flags]
//
// Examples:
//
//	ecgsim -bpm 72 -seconds 60 -out recording.txt
//	ecgsim -bpm 55 -noise 0.05 -realtime | tee /tmp/stream.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/algo-ecg/acquire"
	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/signal"
)

func main() {
	var (
		rate     = flag.Float64("rate", 250, "sample rate in Hz")
		bpm      = flag.Float64("bpm", 72, "simulated heart rate")
		noise    = flag.Float64("noise", 0.02, "additive noise amplitude")
		seconds  = flag.Float64("seconds", 60, "stream duration in seconds")
		seed     = flag.Int64("seed", 1, "noise generator seed")
		outPath  = flag.String("out", "", "write to a file instead of stdout")
		realtime = flag.Bool("realtime", false, "pace output at the sample rate")
	)
	flag.Parse()

	if err := run(*rate, *bpm, *noise, *seconds, *seed, *outPath, *realtime); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(rate, bpm, noise, seconds float64, seed int64, outPath string, realtime bool) error {
	samples := int(rate * seconds)
	if samples <= 0 {
		return fmt.Errorf("ecgsim: rate %v and seconds %v yield no samples", rate, seconds)
	}

	gen := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(rate)},
		signal.WithSeed(seed),
	)
	trace, err := gen.ECG(bpm, noise, samples)
	if err != nil {
		return err
	}

	if outPath != "" {
		return acquire.SaveFile(outPath, trace)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	var tick *time.Ticker
	if realtime {
		tick = time.NewTicker(time.Duration(float64(time.Second) / rate))
		defer tick.Stop()
	}

	for _, v := range trace {
		if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64) + "\n"); err != nil {
			return err
		}
		if tick != nil {
			if err := w.Flush(); err != nil {
				return err
			}
			<-tick.C
		}
	}
	return nil
}
