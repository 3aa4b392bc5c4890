package ensemble

// Confidence is a qualitative label for the agreement between models.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very-high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
	ConfidenceVeryLow  Confidence = "very-low"
)

type confidenceRule struct {
	minModels     int
	maxKmExcluded float64
	level         Confidence
}

// confidenceRules are checked top to bottom; the first match wins.
var confidenceRules = []confidenceRule{
	{minModels: 8, maxKmExcluded: 50, level: ConfidenceVeryHigh},
	{minModels: 6, maxKmExcluded: 100, level: ConfidenceHigh},
	{minModels: 4, maxKmExcluded: 150, level: ConfidenceMedium},
	{minModels: 2, maxKmExcluded: 200, level: ConfidenceLow},
}

// ConfidenceLevel labels an hour from its contributor count and position spread.
func ConfidenceLevel(modelCount int, uncertaintyKm float64) Confidence {
	for _, r := range confidenceRules {
		if modelCount >= r.minModels && uncertaintyKm < r.maxKmExcluded {
			return r.level
		}
	}
	return ConfidenceVeryLow
}
