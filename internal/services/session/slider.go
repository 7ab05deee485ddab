package session

import "wazp-annotator/internal/models"

// ComputeSlider derives the frame slider of a video with frameCount frames.
// The step is a quarter of the video, rounded down to thousands for long
// videos, and the default position is two steps in.
func ComputeSlider(frameCount int) models.FrameSlider {
	maxIndex := frameCount - 1
	if maxIndex < 0 {
		maxIndex = 0
	}

	q := frameCount / 4
	step := q
	if q > 1000 {
		step = q - q%1000
	}
	if step < 1 {
		step = 1
	}

	def := 2 * step
	if def > maxIndex {
		def = maxIndex
	}

	return models.FrameSlider{
		MaxFrameIndex:     maxIndex,
		StepSize:          step,
		DefaultFrameIndex: def,
	}
}
