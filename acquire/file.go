package acquire

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/ecg"
)

// LoadFile reads a recording stored as one sample per line and returns it
// as a buffer at the given sample rate. Malformed lines are logged with
// their line number and skipped; a file with no valid samples yields
// [ErrNoData].
func LoadFile(log *zap.Logger, path string, sampleRate float64) (ecg.Buffer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if sampleRate <= 0 {
		return ecg.Buffer{}, fmt.Errorf("acquire: sample rate must be > 0: %v", sampleRate)
	}

	f, err := os.Open(path)
	if err != nil {
		return ecg.Buffer{}, fmt.Errorf("acquire: open recording: %w", err)
	}
	defer f.Close()

	var samples []float64
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		value, ok := parseSample(scanner.Text())
		if !ok {
			if scanner.Text() != "" {
				log.Warn("skipping malformed sample",
					zap.String("file", path),
					zap.Int("line", lineNo))
			}
			continue
		}
		samples = append(samples, value)
	}
	if err := scanner.Err(); err != nil {
		return ecg.Buffer{}, fmt.Errorf("acquire: read recording: %w", err)
	}
	if len(samples) == 0 {
		return ecg.Buffer{}, fmt.Errorf("%w: %s", ErrNoData, path)
	}

	log.Info("recording loaded",
		zap.String("file", path),
		zap.Int("samples", len(samples)),
		zap.Float64("sample_rate_hz", sampleRate))

	return ecg.NewBuffer(samples, sampleRate), nil
}

// SaveFile writes samples in the same one-per-line format read by
// [LoadFile] and the serial stream.
func SaveFile(path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("acquire: create recording: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range samples {
		if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64) + "\n"); err != nil {
			return fmt.Errorf("acquire: write recording: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("acquire: flush recording: %w", err)
	}
	return nil
}
