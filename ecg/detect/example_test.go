package detect_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/ecg/detect"
)

func ExampleRefractorySamples() {
	// At 250 Hz and a 220 bpm ceiling, two beats can be no closer than
	// 68 samples.
	fmt.Println(detect.RefractorySamples(250, 220))
	// Output:
	// 68
}
