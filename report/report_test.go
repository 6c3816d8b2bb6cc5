package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ecg/hrv"
)

func sampleSummary() Summary {
	return Summary{
		GeneratedAt:  time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Source:       "/dev/ttyUSB0",
		SampleRateHz: 250,
		SampleCount:  15000,
		Metrics: hrv.Report{
			MeanRRMs:         833.2,
			SDNNMs:           41.3,
			RMSSDMs:          28.9,
			PNN50Pct:         12.5,
			MeanHeartRateBPM: 72.0,
			BeatCount:        73,
			ExcludedCount:    0,
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleSummary()))

	out := buf.String()
	for _, want := range []string{
		"Generated: 2026-03-14 15:09:26",
		"Source:    /dev/ttyUSB0",
		"Samples:      15000",
		"Sample rate:  250.0 Hz",
		"Duration:     60.0 s",
		"Beats detected:  73",
		"Mean heart rate: 72.0 bpm",
		"Mean RR:  833.2 ms",
		"SDNN:     41.3 ms",
		"RMSSD:    28.9 ms",
		"pNN50:    12.5 %",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "excluded")
}

func TestRenderMentionsExcludedIntervals(t *testing.T) {
	s := sampleSummary()
	s.Metrics.ExcludedCount = 3

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))

	assert.Contains(t, buf.String(), "3 RR interval(s) outside the plausible")
}

func TestDurationSeconds(t *testing.T) {
	s := Summary{SampleRateHz: 250, SampleCount: 2500}
	assert.Equal(t, 10.0, s.DurationSeconds())

	assert.Equal(t, 0.0, Summary{SampleCount: 100}.DurationSeconds())
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "nested", "report.txt")

	require.NoError(t, WriteFile(path, sampleSummary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ECG Heart Rate Variability Report"))
}
