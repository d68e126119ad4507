package incidents

// Measure selects one of the summed quantities of a DailyAggregate.
type Measure int

const (
	MeasureIncidents Measure = iota
	MeasureKilled
	MeasureInjured
)

// Measures lists every measure in legend order.
var Measures = []Measure{MeasureIncidents, MeasureKilled, MeasureInjured}

func (m Measure) String() string {
	switch m {
	case MeasureIncidents:
		return "Incidents"
	case MeasureKilled:
		return "Killed"
	case MeasureInjured:
		return "Injured"
	default:
		return "Unknown"
	}
}

// Value returns the measure of a.
func (m Measure) Value(a DailyAggregate) int {
	switch m {
	case MeasureKilled:
		return a.Killed
	case MeasureInjured:
		return a.Injured
	default:
		return a.Incidents
	}
}

// Total returns the measure of t.
func (m Measure) Total(t Totals) int {
	switch m {
	case MeasureKilled:
		return t.Killed
	case MeasureInjured:
		return t.Injured
	default:
		return t.Incidents
	}
}
