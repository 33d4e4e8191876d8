package schema

// Names of the two inputs of an overlap case.
const (
	LargeInputName = "interval_1"
	ShortInputName = "interval_2"
)

// CheckCase is one data-driven overlap case.
// Exactly one of Expected and ExpectedRef is meaningful: when ExpectedRef is
// set the result must equal the named input range.
type CheckCase struct {
	Name        string
	Large       RangeSpec
	Short       RangeSpec
	Expected    TimeRange
	ExpectedRef string
}

// CheckResult holds the outcome of evaluating one CheckCase.
type CheckResult struct {
	Name   string    `json:"name"`
	Passed bool      `json:"passed"`
	Got    TimeRange `json:"got"`
	Want   TimeRange `json:"want"`
	Error  string    `json:"error,omitempty"`
}

// CheckSummary aggregates the results of a case file.
type CheckSummary struct {
	Results []CheckResult `json:"results"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
}

// OK reports whether every case passed.
func (cs CheckSummary) OK() bool {
	return cs.Failed == 0
}
