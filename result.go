package econstats

// YoYType distinguishes how a chart's year-over-year change is expressed.
type YoYType string

const (
	YoYPercent YoYType = "percent" // Percent change, for level series.
	YoYPoints  YoYType = "pp"      // Percentage-point change, for rate series.
	YoYJobs    YoYType = "jobs"    // Absolute job change, for payroll series.
)

// Recession marks one shaded recession span on a chart, in the same date
// format as the chart's Dates axis.
type Recession struct {
	Start string
	End   string
}

// Trace is one named series inside a combined chart.
type Trace struct {
	Name   string
	Dates  []string
	Values []float64
}

// Chart is one renderable series panel. Dates and Values are
// index-aligned. Latest and YoYChange are nil when the backend could not
// compute them.
type Chart struct {
	SeriesID           string
	Name               string
	Unit               string
	Source             string
	Dates              []string
	Values             []float64
	Latest             *float64
	LatestDate         string // Pre-formatted, e.g. "Q1 2024" or "Jan 2024".
	YoYChange          *float64
	YoYType            YoYType
	Bullets            []string
	SeasonallyAdjusted bool
	Recessions         []Recession
	Traces             []Trace // Non-empty only when IsCombined.
	IsCombined         bool
}

// Metric is one headline indicator shown above the charts.
type Metric struct {
	SeriesID string
	Label    string
	Value    float64
	Unit     string
	Change   *float64 // Period-over-period change; nil when unavailable.
}

// SourceInfo identifies one upstream data provider used for a query.
type SourceInfo struct {
	Name   string
	URL    string
	Series []string // Series IDs pulled from this provider.
}

// Fragments holds named HTML boxes the backend renders for special
// queries. Each field is independently nullable and independently
// settable: merging an update only overwrites the fields present on it.
type Fragments struct {
	FedSEP     *string // Fed Summary of Economic Projections table.
	Recession  *string // Recession-indicator scorecard.
	Polymarket *string // Prediction-market odds box.
}

// Merge returns f with the fragments present on other overwritten.
func (f Fragments) Merge(other Fragments) Fragments {
	if other.FedSEP != nil {
		f.FedSEP = other.FedSEP
	}
	if other.Recession != nil {
		f.Recession = other.Recession
	}
	if other.Polymarket != nil {
		f.Polymarket = other.Polymarket
	}
	return f
}

// Empty reports whether no fragment is set.
func (f Fragments) Empty() bool {
	return f.FedSEP == nil && f.Recession == nil && f.Polymarket == nil
}

// Result is the incrementally assembled outcome of one query.
//
// Results are snapshots: slices are replaced wholesale as events apply,
// never mutated in place, so a copied Result stays stable while the
// aggregator keeps applying events to its own copy.
type Result struct {
	Query           string
	Summary         string
	Charts          []Chart
	Metrics         []Metric
	TemporalContext string
	Fragments       Fragments
	Sources         []SourceInfo
	Suggestions     []string
	ErrorMessage    string // User-visible failure text when State is Failed.
	State           StreamState
}

// Renderable reports whether the result view should replace the
// connecting indicator. It derives from the snapshot so callers decide
// view transitions themselves; applying events has no rendering side
// effects.
func (r Result) Renderable() bool {
	return r.State != StreamStateConnecting
}

// Empty reports whether nothing user-visible has been assembled.
func (r Result) Empty() bool {
	return len(r.Charts) == 0 &&
		len(r.Metrics) == 0 &&
		r.Summary == "" &&
		r.Fragments.Empty() &&
		len(r.Sources) == 0
}
