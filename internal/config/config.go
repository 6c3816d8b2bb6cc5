// Package config loads the analysis tool configuration from YAML with
// environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ecg/ecg/detect"
	"github.com/cwbudde/algo-ecg/hrv"
	"github.com/cwbudde/algo-ecg/pipeline"
)

// Config is the complete configuration of one analysis run.
type Config struct {
	Serial    SerialConfig    `yaml:"serial"`
	Signal    SignalConfig    `yaml:"signal"`
	Detection DetectionConfig `yaml:"detection"`
	HRV       HRVConfig       `yaml:"hrv"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// SerialConfig describes the sensor connection.
type SerialConfig struct {
	Port            string  `yaml:"port"`
	BaudRate        int     `yaml:"baud_rate"`
	DurationMinutes float64 `yaml:"duration_minutes"`
}

// SignalConfig holds the acquisition rate and conditioning passband.
type SignalConfig struct {
	SampleRateHz float64 `yaml:"sample_rate_hz"`
	LowCutHz     float64 `yaml:"low_cut_hz"`
	HighCutHz    float64 `yaml:"high_cut_hz"`
	FilterOrder  int     `yaml:"filter_order"`
}

// DetectionConfig holds the R-peak detector parameters.
type DetectionConfig struct {
	ThresholdMultiplier float64 `yaml:"threshold_multiplier"`
	MaxHeartRateBPM     float64 `yaml:"max_heart_rate_bpm"`
}

// HRVConfig holds interval plausibility bounds and the pNN cutoff.
type HRVConfig struct {
	MinPlausibleRRMs float64 `yaml:"min_plausible_rr_ms"`
	MaxPlausibleRRMs float64 `yaml:"max_plausible_rr_ms"`
	PNNThresholdMs   float64 `yaml:"pnn_threshold_ms"`
}

// OutputConfig controls where reports and plots land. Paths are joined
// with a per-run timestamp so repeated runs never overwrite each other.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	PlotDPI int    `yaml:"plot_dpi"`
}

// LogConfig selects logger verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// timestampFormat stamps output artifacts of one run.
const timestampFormat = "20060102_150405"

// Default returns the standard configuration for the 250 Hz sensor rig.
func Default() Config {
	return Config{
		Serial: SerialConfig{
			Port:            "/dev/ttyUSB0",
			BaudRate:        115200,
			DurationMinutes: 1,
		},
		Signal: SignalConfig{
			SampleRateHz: 250,
			LowCutHz:     0.5,
			HighCutHz:    40,
			FilterOrder:  3,
		},
		Detection: DetectionConfig{
			ThresholdMultiplier: 0.7,
			MaxHeartRateBPM:     220,
		},
		HRV: HRVConfig{
			MinPlausibleRRMs: 300,
			MaxPlausibleRRMs: 2000,
			PNNThresholdMs:   50,
		},
		Output: OutputConfig{
			Dir:     "results",
			PlotDPI: 300,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over [Default], applies environment overrides, and
// validates the result. An empty path loads defaults plus environment
// only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides deployment-specific values. Only settings that vary
// between hosts are exposed this way; tuning parameters stay in YAML.
func (c *Config) applyEnv() {
	if v := os.Getenv("ECG_SERIAL_PORT"); v != "" {
		c.Serial.Port = v
	}
	if v := os.Getenv("ECG_BAUD_RATE"); v != "" {
		if baud, err := strconv.Atoi(v); err == nil && baud > 0 {
			c.Serial.BaudRate = baud
		}
	}
	if v := os.Getenv("ECG_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("ECG_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks every tunable against its domain.
func (c Config) Validate() error {
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("config: baud_rate must be > 0: %d", c.Serial.BaudRate)
	}
	if c.Serial.DurationMinutes <= 0 {
		return fmt.Errorf("config: duration_minutes must be > 0: %v", c.Serial.DurationMinutes)
	}
	if c.Signal.SampleRateHz <= 0 {
		return fmt.Errorf("config: sample_rate_hz must be > 0: %v", c.Signal.SampleRateHz)
	}
	if c.Signal.LowCutHz <= 0 || c.Signal.HighCutHz <= c.Signal.LowCutHz {
		return fmt.Errorf("config: passband %v-%v Hz is not a valid band", c.Signal.LowCutHz, c.Signal.HighCutHz)
	}
	if c.Signal.HighCutHz >= c.Signal.SampleRateHz/2 {
		return fmt.Errorf("config: high_cut_hz %v must be below Nyquist %v", c.Signal.HighCutHz, c.Signal.SampleRateHz/2)
	}
	if c.Signal.FilterOrder < 1 {
		return fmt.Errorf("config: filter_order must be >= 1: %d", c.Signal.FilterOrder)
	}
	if c.Detection.ThresholdMultiplier <= 0 {
		return fmt.Errorf("config: threshold_multiplier must be > 0: %v", c.Detection.ThresholdMultiplier)
	}
	if c.Detection.MaxHeartRateBPM <= 0 {
		return fmt.Errorf("config: max_heart_rate_bpm must be > 0: %v", c.Detection.MaxHeartRateBPM)
	}
	if c.HRV.MinPlausibleRRMs <= 0 || c.HRV.MaxPlausibleRRMs <= c.HRV.MinPlausibleRRMs {
		return fmt.Errorf("config: plausible RR range %v-%v ms is invalid", c.HRV.MinPlausibleRRMs, c.HRV.MaxPlausibleRRMs)
	}
	if c.Output.PlotDPI <= 0 {
		return fmt.Errorf("config: plot_dpi must be > 0: %d", c.Output.PlotDPI)
	}
	return nil
}

// Pipeline converts the file representation into the analysis
// configuration.
func (c Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		LowCutHz:    c.Signal.LowCutHz,
		HighCutHz:   c.Signal.HighCutHz,
		FilterOrder: c.Signal.FilterOrder,
		Detector: detect.Config{
			MaxBPM:              c.Detection.MaxHeartRateBPM,
			ThresholdMultiplier: c.Detection.ThresholdMultiplier,
		},
		Plausible: hrv.PlausibleRange{
			MinMs: c.HRV.MinPlausibleRRMs,
			MaxMs: c.HRV.MaxPlausibleRRMs,
		},
		PNNThresholdMs: c.HRV.PNNThresholdMs,
	}
}

// CollectDuration returns the configured acquisition window.
func (c Config) CollectDuration() time.Duration {
	return time.Duration(c.Serial.DurationMinutes * float64(time.Minute))
}

// ReportPath returns the timestamped report destination for a run
// started at now.
func (c Config) ReportPath(now time.Time) string {
	return filepath.Join(c.Output.Dir, "hrv_report_"+now.Format(timestampFormat)+".txt")
}

// PlotDir returns the timestamped plot directory for a run started at
// now.
func (c Config) PlotDir(now time.Time) string {
	return filepath.Join(c.Output.Dir, "ecg_plots_"+now.Format(timestampFormat))
}
