package entities

// generationBounds holds the last national dex number of each generation
var generationBounds = []int{151, 251, 386, 493, 649, 721, 809, 905, 1025}

// GenerationOf maps a national dex number to its generation (1-9)
func GenerationOf(dexNumber int) (int, bool) {
	if dexNumber < 1 {
		return 0, false
	}
	for i, last := range generationBounds {
		if dexNumber <= last {
			return i + 1, true
		}
	}
	return 0, false
}
