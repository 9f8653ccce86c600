package weather

// Tendency classifies a delta against the climate normal.
type Tendency string

const (
	TendencyWarmer   Tendency = "warmer"
	TendencyCooler   Tendency = "cooler"
	TendencyNoChange Tendency = "no change"
)

// RangeState is the combined position of today's high and low relative to the
// one-standard-deviation band around the normals.
type RangeState string

const (
	RangeBothWithin RangeState = "both_within"
	RangeHighOnly   RangeState = "high_within"
	RangeLowOnly    RangeState = "low_within"
	RangeNeither    RangeState = "neither_within"
)

// Sentence renders the narrative for the state.
func (s RangeState) Sentence() string {
	switch s {
	case RangeBothWithin:
		return "Both the high and the low are within one standard deviation of the climate normals."
	case RangeHighOnly:
		return "The high is within the normal range, but the low is outside it."
	case RangeLowOnly:
		return "The low is within the normal range, but the high is outside it."
	default:
		return "Both the high and the low are outside the normal range."
	}
}

// DeltaResult captures how today's temperatures compare to the normals.
// Everything here is computed once by Compare; renderers only print it.
type DeltaResult struct {
	DeltaHigh    float64    `json:"deltaHigh"`
	DeltaLow     float64    `json:"deltaLow"`
	HighTendency Tendency   `json:"highTendency"`
	LowTendency  Tendency   `json:"lowTendency"`
	HighInRange  bool       `json:"highInRange"`
	LowInRange   bool       `json:"lowInRange"`
	RangeState   RangeState `json:"rangeState"`
}

// Compare measures current against normals. DeltaHigh and DeltaLow are signed
// differences from the averages. The range checks compare against the
// one-standard-deviation bounds; landing exactly on a bound counts as within.
func Compare(current CurrentConditions, normals ClimateNormals) DeltaResult {
	d := DeltaResult{
		DeltaHigh:   current.HighF - normals.HighAvg,
		DeltaLow:    current.LowF - normals.LowAvg,
		HighInRange: current.HighF <= normals.HighSD,
		LowInRange:  current.LowF >= normals.LowSD,
	}
	d.HighTendency = Classify(d.DeltaHigh)
	d.LowTendency = Classify(d.DeltaLow)
	d.RangeState = rangeState(d.HighInRange, d.LowInRange)
	return d
}

// Classify maps a signed delta to a tendency. An exact zero is reported as
// no-change, never folded into warmer or cooler.
func Classify(delta float64) Tendency {
	switch {
	case delta > 0:
		return TendencyWarmer
	case delta < 0:
		return TendencyCooler
	default:
		return TendencyNoChange
	}
}

func rangeState(highIn, lowIn bool) RangeState {
	switch {
	case highIn && lowIn:
		return RangeBothWithin
	case highIn:
		return RangeHighOnly
	case lowIn:
		return RangeLowOnly
	default:
		return RangeNeither
	}
}
