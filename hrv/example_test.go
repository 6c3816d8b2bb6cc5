package hrv_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/hrv"
)

func ExampleIntervals() {
	peaks := []int{0, 250, 500}
	intervals := hrv.Intervals(peaks, 250, hrv.DefaultPlausibleRange())
	fmt.Println(len(intervals), intervals[0].Ms, intervals[0].Valid)
	// Output:
	// 2 1000 true
}

func ExampleCompute() {
	intervals := []hrv.Interval{
		{Ms: 800, Valid: true},
		{Ms: 820, Valid: true},
		{Ms: 790, Valid: true},
	}
	rep, _ := hrv.Compute(intervals)
	fmt.Printf("mean %.1f ms over %d beats\n", rep.MeanRRMs, rep.BeatCount)
	// Output:
	// mean 803.3 ms over 4 beats
}
