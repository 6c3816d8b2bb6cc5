// Package report renders the results of an analysis run as a plain text
// summary suitable for archiving next to the recording.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/cwbudde/algo-ecg/hrv"
)

// Summary collects everything the rendered report mentions about one run.
type Summary struct {
	GeneratedAt time.Time
	// Source names where the samples came from: a serial port, a file, or
	// a generator description.
	Source       string
	SampleRateHz float64
	SampleCount  int
	Metrics      hrv.Report
}

// DurationSeconds returns the recording length implied by the sample
// count and rate.
func (s Summary) DurationSeconds() float64 {
	if s.SampleRateHz <= 0 {
		return 0
	}
	return float64(s.SampleCount) / s.SampleRateHz
}

const reportTemplate = `ECG Heart Rate Variability Report
=================================
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
Source:    {{.Source}}

Recording
  Samples:      {{.SampleCount}}
  Sample rate:  {{printf "%.1f" .SampleRateHz}} Hz
  Duration:     {{printf "%.1f" .DurationSeconds}} s

Heart Rate
  Beats detected:  {{.Metrics.BeatCount}}
  Mean heart rate: {{printf "%.1f" .Metrics.MeanHeartRateBPM}} bpm

Time-Domain HRV
  Mean RR:  {{printf "%.1f" .Metrics.MeanRRMs}} ms
  SDNN:     {{printf "%.1f" .Metrics.SDNNMs}} ms
  RMSSD:    {{printf "%.1f" .Metrics.RMSSDMs}} ms
  pNN50:    {{printf "%.1f" .Metrics.PNN50Pct}} %
{{- if gt .Metrics.ExcludedCount 0}}

Note: {{.Metrics.ExcludedCount}} RR interval(s) outside the plausible
range were excluded from the metrics above.
{{- end}}
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Render writes the text report for s to w.
func Render(w io.Writer, s Summary) error {
	if err := tmpl.Execute(w, s); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, creating parent directories as
// needed.
func WriteFile(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := Render(f, s); err != nil {
		return err
	}
	return f.Close()
}
