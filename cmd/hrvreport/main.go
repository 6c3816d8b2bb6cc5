// Command hrvreport runs the full ECG analysis: it acquires a recording
// from a serial-attached sensor or a file, conditions the signal, detects
// R peaks, computes time-domain HRV metrics, and writes a text report
// plus diagnostic plots.
//
// Usage:
//
//	hrvreport [flags]
//
// Examples:
//
//	hrvreport -config config.yaml
//	hrvreport -input recording.txt
//	hrvreport -port /dev/ttyUSB0 -duration 2
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/acquire"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/internal/config"
	"github.com/cwbudde/algo-ecg/internal/logging"
	"github.com/cwbudde/algo-ecg/pipeline"
	"github.com/cwbudde/algo-ecg/plot"
	"github.com/cwbudde/algo-ecg/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML configuration (defaults apply when empty)")
		inputPath  = flag.String("input", "", "analyze a recorded file instead of the serial port")
		port       = flag.String("port", "", "serial port override")
		duration   = flag.Float64("duration", 0, "collection duration override in minutes")
		outDir     = flag.String("out", "", "output directory override")
		logLevel   = flag.String("log-level", "", "log level override (debug, info, warn, error)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *duration > 0 {
		cfg.Serial.DurationMinutes = *duration
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, *inputPath, log); err != nil {
		log.Error("analysis failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, inputPath string, log *zap.Logger) error {
	buf, source, err := loadRecording(cfg, inputPath, log)
	if err != nil {
		return err
	}
	log.Info("recording ready",
		zap.String("source", source),
		zap.Int("samples", buf.Len()),
		zap.Float64("duration_s", buf.DurationSeconds()))

	res, err := pipeline.Run(buf, cfg.Pipeline())
	if err != nil {
		return err
	}
	log.Info("analysis complete",
		zap.Int("beats", res.Report.BeatCount),
		zap.Float64("mean_hr_bpm", res.Report.MeanHeartRateBPM),
		zap.Int("excluded_intervals", res.Report.ExcludedCount))

	logMainsRatio(log, buf, res)

	now := time.Now()
	summary := report.Summary{
		GeneratedAt:  now,
		Source:       source,
		SampleRateHz: buf.SampleRate,
		SampleCount:  buf.Len(),
		Metrics:      res.Report,
	}

	reportPath := cfg.ReportPath(now)
	if err := report.WriteFile(reportPath, summary); err != nil {
		return err
	}
	log.Info("report written", zap.String("path", reportPath))

	if err := report.Render(os.Stdout, summary); err != nil {
		return err
	}

	return writePlots(cfg, now, res, log)
}

// loadRecording reads samples from the configured source: a recorded
// file when inputPath is set, the serial port otherwise.
func loadRecording(cfg config.Config, inputPath string, log *zap.Logger) (ecg.Buffer, string, error) {
	if inputPath != "" {
		buf, err := acquire.LoadFile(log, inputPath, cfg.Signal.SampleRateHz)
		return buf, inputPath, err
	}

	src, err := acquire.NewSerialSource(acquire.SerialConfig{
		Port:       cfg.Serial.Port,
		BaudRate:   cfg.Serial.BaudRate,
		SampleRate: cfg.Signal.SampleRateHz,
	}, log)
	if err != nil {
		return ecg.Buffer{}, "", err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	buf, err := src.Collect(ctx, cfg.CollectDuration())
	return buf, cfg.Serial.Port, err
}

// logMainsRatio reports powerline contamination before and after
// conditioning. Failure here is diagnostic only and never aborts a run.
func logMainsRatio(log *zap.Logger, buf ecg.Buffer, res pipeline.Result) {
	before, err := spectrum.MainsPowerRatio(buf.Samples, buf.SampleRate)
	if err != nil {
		return
	}
	after, err := spectrum.MainsPowerRatio(res.Filtered, buf.SampleRate)
	if err != nil {
		return
	}
	log.Info("powerline interference",
		zap.Float64("raw_ratio", before),
		zap.Float64("filtered_ratio", after))
}

func writePlots(cfg config.Config, now time.Time, res pipeline.Result, log *zap.Logger) error {
	dir := cfg.PlotDir(now)
	dpi := cfg.Output.PlotDPI

	if err := plot.SignalComparison(filepath.Join(dir, "signal.png"), res.Raw, res.Filtered, res.Peaks, dpi); err != nil {
		return err
	}
	if err := plot.Tachogram(filepath.Join(dir, "tachogram.png"), res.Intervals, dpi); err != nil {
		return err
	}

	analysis, err := spectrum.Analyze(res.Filtered, res.Raw.SampleRate)
	if err != nil {
		return err
	}
	if err := plot.Spectrum(filepath.Join(dir, "spectrum.png"), analysis, dpi); err != nil {
		return err
	}

	log.Info("plots written", zap.String("dir", dir))
	return nil
}
