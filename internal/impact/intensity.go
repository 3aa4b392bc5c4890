package impact

// Intensity is the qualitative strength of a storm at landfall.
type Intensity string

const (
	IntensityCatastrophic Intensity = "catastrophic"
	IntensityExtreme      Intensity = "extreme"
	IntensitySevere       Intensity = "severe"
	IntensityHigh         Intensity = "high"
	IntensityModerate     Intensity = "moderate"
	IntensityLow          Intensity = "low"
)

// intensityRules are checked top to bottom; the first match wins.
var intensityRules = []struct {
	minKmh int
	level  Intensity
}{
	{220, IntensityCatastrophic},
	{180, IntensityExtreme},
	{150, IntensitySevere},
	{120, IntensityHigh},
	{90, IntensityModerate},
}

// IntensityFor buckets a sustained wind speed in km/h.
func IntensityFor(windKmh int) Intensity {
	for _, r := range intensityRules {
		if windKmh >= r.minKmh {
			return r.level
		}
	}
	return IntensityLow
}

// ImpactLevel is the wind exposure of a city.
type ImpactLevel string

const (
	ImpactExtreme  ImpactLevel = "extreme"
	ImpactHigh     ImpactLevel = "high"
	ImpactModerate ImpactLevel = "moderate"
)

func (l ImpactLevel) severity() int {
	switch l {
	case ImpactExtreme:
		return 3
	case ImpactHigh:
		return 2
	case ImpactModerate:
		return 1
	default:
		return 0
	}
}

type impactRule struct {
	maxKmExcluded float64
	minWindKmh    int
	decay         float64
	level         ImpactLevel
}

// impactRules approximate typhoon, storm and gale force wind radii. Checked in
// order so the more severe level wins when several apply.
var impactRules = []impactRule{
	{maxKmExcluded: 80, minWindKmh: 119, decay: 1.0, level: ImpactExtreme},
	{maxKmExcluded: 150, minWindKmh: 93, decay: 0.7, level: ImpactHigh},
	{maxKmExcluded: 250, minWindKmh: 63, decay: 0.5, level: ImpactModerate},
}

// classifyExposure returns the impact level and the share of the storm's wind
// felt by a city at distanceKm. The last value is false when the city is clear.
func classifyExposure(distanceKm float64, windKmh int) (ImpactLevel, float64, bool) {
	for _, r := range impactRules {
		if distanceKm < r.maxKmExcluded && windKmh >= r.minWindKmh {
			return r.level, r.decay, true
		}
	}
	return "", 0, false
}
