package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/bandpass"
	"github.com/cwbudde/algo-ecg/dsp/signal"
	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/ecg/detect"
	"github.com/cwbudde/algo-ecg/hrv"
)

func syntheticBuffer(t *testing.T, bpm float64, samples int) ecg.Buffer {
	t.Helper()
	gen := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(250)},
		signal.WithSeed(7),
	)
	sig, err := gen.ECG(bpm, 0.02, samples)
	if err != nil {
		t.Fatalf("generate ECG: %v", err)
	}
	return ecg.NewBuffer(sig, 250)
}

func TestRunSyntheticECG(t *testing.T) {
	const bpm = 72.0
	buf := syntheticBuffer(t, bpm, 5000) // 20 s

	res, err := Run(buf, DefaultConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Filtered) != len(buf.Samples) {
		t.Fatalf("filtered length = %d, want %d", len(res.Filtered), len(buf.Samples))
	}
	if len(res.Intervals) != len(res.Peaks)-1 {
		t.Fatalf("interval count = %d, want %d", len(res.Intervals), len(res.Peaks)-1)
	}

	// 20 s at 72 bpm carries 24 full cycles.
	if got := len(res.Peaks); got < 22 || got > 25 {
		t.Fatalf("peak count = %d, want near 24", got)
	}
	wantRR := 60000.0 / bpm
	if math.Abs(res.Report.MeanRRMs-wantRR) > 10 {
		t.Errorf("MeanRRMs = %.2f, want %.2f ± 10", res.Report.MeanRRMs, wantRR)
	}
	if math.Abs(res.Report.MeanHeartRateBPM-bpm) > 2 {
		t.Errorf("MeanHeartRateBPM = %.2f, want %.1f ± 2", res.Report.MeanHeartRateBPM, bpm)
	}
	if res.Report.BeatCount != len(res.Peaks) {
		t.Errorf("BeatCount = %d, want %d", res.Report.BeatCount, len(res.Peaks))
	}
	if res.Report.ExcludedCount != 0 {
		t.Errorf("ExcludedCount = %d, want 0", res.Report.ExcludedCount)
	}
}

func TestRunDeterministic(t *testing.T) {
	buf := syntheticBuffer(t, 60, 4000)

	first, err := Run(buf, DefaultConfig())
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := Run(buf, DefaultConfig())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if first.Report != second.Report {
		t.Fatalf("reports differ: %+v vs %+v", first.Report, second.Report)
	}
}

func TestRunEmptyBuffer(t *testing.T) {
	buf := ecg.NewBuffer(nil, 250)

	_, err := Run(buf, DefaultConfig())
	if !errors.Is(err, detect.ErrEmptySignal) {
		t.Fatalf("err = %v, want detect.ErrEmptySignal", err)
	}
}

func TestRunInvalidFilterSpec(t *testing.T) {
	buf := syntheticBuffer(t, 60, 1000)
	cfg := DefaultConfig()
	cfg.LowCutHz = 50
	cfg.HighCutHz = 40

	_, err := Run(buf, cfg)
	if !errors.Is(err, bandpass.ErrInvalidSpec) {
		t.Fatalf("err = %v, want bandpass.ErrInvalidSpec", err)
	}
}

func TestRunInvalidDetectorConfig(t *testing.T) {
	buf := syntheticBuffer(t, 60, 1000)
	cfg := DefaultConfig()
	cfg.Detector.MaxBPM = -5

	_, err := Run(buf, cfg)
	if !errors.Is(err, detect.ErrInvalidConfig) {
		t.Fatalf("err = %v, want detect.ErrInvalidConfig", err)
	}
}

func TestRunSinglePeakInsufficientData(t *testing.T) {
	// One isolated smooth bump yields a single peak, hence zero RR
	// intervals.
	sig := make([]float64, 1000)
	for i := range sig {
		d := float64(i-500) / 10
		sig[i] = math.Exp(-d * d)
	}
	buf := ecg.NewBuffer(sig, 250)

	res, err := Run(buf, DefaultConfig())
	if !errors.Is(err, hrv.ErrInsufficientData) {
		t.Fatalf("err = %v, want hrv.ErrInsufficientData", err)
	}
	if len(res.Peaks) != 1 {
		t.Fatalf("peak count = %d, want 1", len(res.Peaks))
	}
	if res.Report != (hrv.Report{}) {
		t.Fatalf("report should be zero on failure, got %+v", res.Report)
	}
}

func TestRunFlatSignal(t *testing.T) {
	buf := ecg.NewBuffer(make([]float64, 2000), 250)

	res, err := Run(buf, DefaultConfig())
	if !errors.Is(err, hrv.ErrInsufficientData) {
		t.Fatalf("err = %v, want hrv.ErrInsufficientData", err)
	}
	if len(res.Peaks) != 0 {
		t.Fatalf("peak count = %d, want 0", len(res.Peaks))
	}
}

func TestRunCustomPNNThreshold(t *testing.T) {
	buf := syntheticBuffer(t, 65, 6000)
	cfg := DefaultConfig()
	cfg.PNNThresholdMs = 5

	loose, err := Run(buf, cfg)
	if err != nil {
		t.Fatalf("Run with 5 ms threshold: %v", err)
	}
	strict, err := Run(buf, DefaultConfig())
	if err != nil {
		t.Fatalf("Run with default threshold: %v", err)
	}
	if loose.Report.PNN50Pct < strict.Report.PNN50Pct {
		t.Fatalf("pNN at 5 ms (%.2f) below pNN at 50 ms (%.2f)", loose.Report.PNN50Pct, strict.Report.PNN50Pct)
	}
}
