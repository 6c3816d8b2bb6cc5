// Package plot writes diagnostic figures for an analysis run: the raw
// and conditioned signal with detected beats, the RR tachogram, and the
// magnitude spectrum.
package plot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/hrv"
)

// figure size shared by all outputs.
const (
	figWidth  = 10 * vg.Inch
	figHeight = 4 * vg.Inch
)

var (
	rawColor      = color.RGBA{R: 0x90, G: 0xa0, B: 0xb0, A: 0xff}
	filteredColor = color.RGBA{B: 0xc0, A: 0xff}
	peakColor     = color.RGBA{R: 0xd0, A: 0xff}
)

// SignalComparison plots the raw trace, the conditioned trace, and
// markers at the detected R peaks over a shared time axis.
func SignalComparison(path string, buf ecg.Buffer, filtered []float64, peaks []int, dpi int) error {
	if len(filtered) != buf.Len() {
		return fmt.Errorf("plot: filtered length %d does not match buffer length %d", len(filtered), buf.Len())
	}

	p := gplot.New()
	p.Title.Text = "ECG Signal Conditioning"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"

	raw := make(plotter.XYs, buf.Len())
	cond := make(plotter.XYs, buf.Len())
	for i := range buf.Samples {
		t := buf.TimeAt(i)
		raw[i] = plotter.XY{X: t, Y: buf.Samples[i]}
		cond[i] = plotter.XY{X: t, Y: filtered[i]}
	}

	rawLine, err := plotter.NewLine(raw)
	if err != nil {
		return fmt.Errorf("plot: raw trace: %w", err)
	}
	rawLine.Color = rawColor

	condLine, err := plotter.NewLine(cond)
	if err != nil {
		return fmt.Errorf("plot: conditioned trace: %w", err)
	}
	condLine.Color = filteredColor

	marks := make(plotter.XYs, 0, len(peaks))
	for _, idx := range peaks {
		if idx < 0 || idx >= len(filtered) {
			continue
		}
		marks = append(marks, plotter.XY{X: buf.TimeAt(idx), Y: filtered[idx]})
	}
	scatter, err := plotter.NewScatter(marks)
	if err != nil {
		return fmt.Errorf("plot: peak markers: %w", err)
	}
	scatter.GlyphStyle.Color = peakColor
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(rawLine, condLine, scatter)
	p.Legend.Add("raw", rawLine)
	p.Legend.Add("filtered", condLine)
	p.Legend.Add("R peaks", scatter)
	p.Legend.Top = true

	return savePNG(p, path, dpi)
}

// Tachogram plots RR interval duration against beat number. Intervals
// flagged implausible are drawn as separate markers so outliers stand
// out.
func Tachogram(path string, intervals []hrv.Interval, dpi int) error {
	p := gplot.New()
	p.Title.Text = "RR Tachogram"
	p.X.Label.Text = "Beat number"
	p.Y.Label.Text = "RR interval (ms)"

	valid := make(plotter.XYs, 0, len(intervals))
	invalid := make(plotter.XYs, 0)
	for i, iv := range intervals {
		xy := plotter.XY{X: float64(i + 1), Y: iv.Ms}
		if iv.Valid {
			valid = append(valid, xy)
		} else {
			invalid = append(invalid, xy)
		}
	}

	line, err := plotter.NewLine(valid)
	if err != nil {
		return fmt.Errorf("plot: tachogram line: %w", err)
	}
	line.Color = filteredColor

	points, err := plotter.NewScatter(valid)
	if err != nil {
		return fmt.Errorf("plot: tachogram points: %w", err)
	}
	points.GlyphStyle.Color = filteredColor
	points.GlyphStyle.Radius = vg.Points(2)

	p.Add(line, points)
	p.Legend.Add("RR", line)

	if len(invalid) > 0 {
		outliers, err := plotter.NewScatter(invalid)
		if err != nil {
			return fmt.Errorf("plot: tachogram outliers: %w", err)
		}
		outliers.GlyphStyle.Color = peakColor
		outliers.GlyphStyle.Radius = vg.Points(3)
		p.Add(outliers)
		p.Legend.Add("excluded", outliers)
	}
	p.Legend.Top = true

	return savePNG(p, path, dpi)
}

// Spectrum plots a one-sided magnitude spectrum on a linear frequency
// axis.
func Spectrum(path string, a spectrum.Analysis, dpi int) error {
	if len(a.FreqHz) != len(a.Magnitude) {
		return fmt.Errorf("plot: spectrum axis length %d does not match magnitudes %d", len(a.FreqHz), len(a.Magnitude))
	}

	p := gplot.New()
	p.Title.Text = "Magnitude Spectrum"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Amplitude"

	xy := make(plotter.XYs, len(a.FreqHz))
	for i := range a.FreqHz {
		xy[i] = plotter.XY{X: a.FreqHz[i], Y: a.Magnitude[i]}
	}

	line, err := plotter.NewLine(xy)
	if err != nil {
		return fmt.Errorf("plot: spectrum line: %w", err)
	}
	line.Color = filteredColor
	p.Add(line)

	return savePNG(p, path, dpi)
}

// savePNG renders p at the requested DPI, creating parent directories.
func savePNG(p *gplot.Plot, path string, dpi int) error {
	if dpi <= 0 {
		dpi = 300
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("plot: create output dir: %w", err)
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(figWidth, figHeight),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("plot: encode %s: %w", path, err)
	}
	return f.Close()
}
