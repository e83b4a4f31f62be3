package types

// TestID names one of the five physical tests.
type TestID string

const (
	Sprint    TestID = "sprint"
	Vertical  TestID = "vertical"
	Broad     TestID = "broad"
	Strength  TestID = "strength"
	Endurance TestID = "endurance"
)

// TestCount is the number of tests in one assessment.
const TestCount = 5

// Dimension is a training axis a sport profile assigns priority to.
type Dimension string

const (
	DimSprint    Dimension = "sprint"
	DimPower     Dimension = "power"
	DimStrength  Dimension = "strength"
	DimEndurance Dimension = "endurance"
)

// Test describes one physical test. Tests is the single ordered source that
// every index-aligned structure derives from.
type Test struct {
	ID            TestID
	Label         string
	ChartLabel    string
	Unit          string
	LowerIsBetter bool
	Dimension     Dimension
}

// Tests lists the five tests in canonical order.
var Tests = [TestCount]Test{
	{ID: Sprint, Label: "20m Sprint", ChartLabel: "Sprint", Unit: "s", LowerIsBetter: true, Dimension: DimSprint},
	{ID: Vertical, Label: "Vertical Jump", ChartLabel: "Vertical", Unit: "cm", Dimension: DimPower},
	{ID: Broad, Label: "Broad Jump", ChartLabel: "Broad", Unit: "cm", Dimension: DimPower},
	{ID: Strength, Label: "Push-Ups", ChartLabel: "Strength", Unit: "reps", Dimension: DimStrength},
	{ID: Endurance, Label: "1km Endurance", ChartLabel: "Endurance", Unit: "min", LowerIsBetter: true, Dimension: DimEndurance},
}

// TestLabels returns the display labels index-aligned with ScoreResult.Scores.
func TestLabels() []string {
	out := make([]string, 0, TestCount)
	for _, t := range Tests {
		out = append(out, t.Label)
	}
	return out
}

// ChartLabels returns the short chart labels index-aligned with ScoreResult.Scores.
func ChartLabels() []string {
	out := make([]string, 0, TestCount)
	for _, t := range Tests {
		out = append(out, t.ChartLabel)
	}
	return out
}

// IndexOf returns the canonical position of id, or -1.
func IndexOf(id TestID) int {
	for i, t := range Tests {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// RawInputs holds one attempt's five measurements. EnduranceMinutes is the
// parsed 1km time; the original text is not kept.
type RawInputs struct {
	SprintSeconds    float64 `json:"sprint_seconds" msgpack:"sprint"`
	VerticalCm       float64 `json:"vertical_cm" msgpack:"vertical"`
	BroadCm          float64 `json:"broad_cm" msgpack:"broad"`
	StrengthReps     float64 `json:"strength_reps" msgpack:"strength"`
	EnduranceMinutes float64 `json:"endurance_minutes" msgpack:"endurance"`
}

// Value returns the measurement for id. Unknown ids read as zero.
func (r RawInputs) Value(id TestID) float64 {
	switch id {
	case Sprint:
		return r.SprintSeconds
	case Vertical:
		return r.VerticalCm
	case Broad:
		return r.BroadCm
	case Strength:
		return r.StrengthReps
	case Endurance:
		return r.EnduranceMinutes
	}
	return 0
}

// ScoreResult is the scored outcome of one submission. Scores follows the
// order of Tests.
type ScoreResult struct {
	Scores [TestCount]Score `json:"scores" msgpack:"scores"`
	Raw    RawInputs        `json:"raw" msgpack:"raw"`
}

// Score returns the tier for id, or zero for an unknown id.
func (r ScoreResult) Score(id TestID) Score {
	if i := IndexOf(id); i >= 0 {
		return r.Scores[i]
	}
	return 0
}

// Total sums the tier values; 5 is all red and 15 is all green.
func (r ScoreResult) Total() int {
	total := 0
	for _, s := range r.Scores {
		total += int(s)
	}
	return total
}

// Greens counts the tests scored Green.
func (r ScoreResult) Greens() int {
	n := 0
	for _, s := range r.Scores {
		if s == Green {
			n++
		}
	}
	return n
}
