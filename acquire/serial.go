package acquire

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/ecg"
)

// ErrNoData indicates that an acquisition finished without a single valid
// sample.
var ErrNoData = errors.New("acquire: no samples collected")

// SerialConfig describes the sensor connection. SampleRate is the nominal
// rate the sensor was programmed with; the stream itself carries no
// timing information.
type SerialConfig struct {
	Port       string
	BaudRate   int
	SampleRate float64

	// SettleTime is waited after opening the port before reading, so the
	// line driver output stabilizes. Zero means 2 seconds.
	SettleTime time.Duration
}

// SerialSource reads an ECG sample stream from a serial port.
type SerialSource struct {
	cfg SerialConfig
	log *zap.Logger
}

// NewSerialSource validates cfg and returns a source. A nil logger
// disables logging.
func NewSerialSource(cfg SerialConfig, log *zap.Logger) (*SerialSource, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("acquire: serial port must be set")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("acquire: baud rate must be > 0: %d", cfg.BaudRate)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("acquire: sample rate must be > 0: %v", cfg.SampleRate)
	}
	if cfg.SettleTime == 0 {
		cfg.SettleTime = 2 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SerialSource{cfg: cfg, log: log}, nil
}

// Collect reads samples for the given duration and returns them as a
// buffer stamped with the configured nominal sample rate. Cancelling ctx
// stops collection early; samples gathered so far are still returned.
func (s *SerialSource) Collect(ctx context.Context, duration time.Duration) (ecg.Buffer, error) {
	s.log.Info("opening serial port",
		zap.String("port", s.cfg.Port),
		zap.Int("baud", s.cfg.BaudRate))

	port, err := serial.Open(s.cfg.Port, &serial.Mode{BaudRate: s.cfg.BaudRate})
	if err != nil {
		return ecg.Buffer{}, fmt.Errorf("acquire: open %s: %w", s.cfg.Port, err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(time.Second); err != nil {
		return ecg.Buffer{}, fmt.Errorf("acquire: set read timeout: %w", err)
	}

	select {
	case <-time.After(s.cfg.SettleTime):
	case <-ctx.Done():
		return ecg.Buffer{}, ctx.Err()
	}
	if err := port.ResetInputBuffer(); err != nil {
		s.log.Warn("reset input buffer failed", zap.Error(err))
	}

	samples := s.collect(ctx, port, duration)
	if len(samples) == 0 {
		return ecg.Buffer{}, ErrNoData
	}

	effective := float64(len(samples)) / duration.Seconds()
	s.log.Info("collection complete",
		zap.Int("samples", len(samples)),
		zap.Duration("duration", duration),
		zap.Float64("effective_rate_hz", effective))

	return ecg.NewBuffer(samples, s.cfg.SampleRate), nil
}

// collect runs the line-oriented read loop over r until the deadline
// passes, ctx is cancelled, or the stream ends.
func (s *SerialSource) collect(ctx context.Context, r io.Reader, duration time.Duration) []float64 {
	deadline := time.Now().Add(duration)
	progressEvery := int(s.cfg.SampleRate)
	if progressEvery < 1 {
		progressEvery = 1
	}

	var samples []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			s.log.Info("collection cancelled", zap.Int("samples", len(samples)))
			return samples
		default:
		}

		value, ok := parseSample(scanner.Text())
		if !ok {
			s.log.Warn("skipping malformed sample", zap.String("line", scanner.Text()))
			continue
		}
		samples = append(samples, value)

		if len(samples)%progressEvery == 0 {
			s.log.Debug("collecting", zap.Int("samples", len(samples)))
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn("serial read ended with error", zap.Error(err))
	}
	return samples
}

// parseSample extracts one numeric sample from a stream line. Empty lines
// and unparseable content are rejected, not fatal.
func parseSample(line string) (float64, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
