package adpcm

// stepTable holds the 49 quantizer step sizes addressed by State.StepIndex.
var stepTable = [49]int{
	256, 272, 304, 336, 368, 400, 448, 496, 544, 592, 656,
	720, 800, 880, 960, 1056, 1168, 1280, 1408, 1552, 1712,
	1888, 2080, 2288, 2512, 2768, 3040, 3344, 3680, 4048,
	4464, 4912, 5392, 5936, 6528, 7184, 7904, 8704, 9568,
	10528, 11584, 12736, 14016, 15408, 16960, 18656, 20512,
	22576, 24832,
}

// indexTable is indexed by the full nibble; the sign bit does not change the delta.
var indexTable = [16]int{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

const (
	minPredictor = -32767
	maxPredictor = 32767
	minStepIndex = 0
	maxStepIndex = len(stepTable) - 1
)
