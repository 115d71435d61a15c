// Package api implements [econstats.Searcher] for the EconStats HTTP API.
//
// The streaming endpoint responds with server-sent events: each frame is
// a "data: " line carrying one self-contained JSON message with a type
// tag, and frames are separated by a blank line. The decoder tolerates
// arbitrary chunk boundaries and discards an unterminated trailing frame
// at EOF. The non-streaming endpoint answers the same query with one
// complete JSON result and backs the fallback path.
package api

import "github.com/econstats/econstats"

const (
	defaultBaseURL = "https://econstats.app"
	searchPath     = "/search"
	streamPath     = "/search/stream"

	// maxFrameSize bounds one SSE frame. Special-query HTML fragments
	// are the largest payloads and stay well under this.
	maxFrameSize = 4 << 20
)

// Frame type tags on the streaming endpoint.
const (
	frameTypeCharts       = "charts"
	frameTypeSpecial      = "special"
	frameTypeSources      = "sources"
	frameTypeSummaryChunk = "summary_chunk"
	frameTypeDone         = "done"
	frameTypeError        = "error"
)

// apiRequest is the JSON body sent to both search endpoints.
type apiRequest struct {
	Query   string            `json:"query"`
	History []apiHistoryEntry `json:"history,omitempty"`
}

// apiHistoryEntry is one prior query in conversation form.
type apiHistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiFrame is the decoded form of one streaming frame: a type tag plus
// the union of type-specific fields.
type apiFrame struct {
	Type            string      `json:"type"`
	Data            []apiChart  `json:"data,omitempty"`
	Metrics         []apiMetric `json:"metrics,omitempty"`
	TemporalContext string      `json:"temporal_context,omitempty"`
	FedSEPHTML      *string     `json:"fed_sep_html,omitempty"`
	RecessionHTML   *string     `json:"recession_html,omitempty"`
	PolymarketHTML  *string     `json:"polymarket_html,omitempty"`
	Sources         []apiSource `json:"sources,omitempty"`
	Text            string      `json:"text,omitempty"`
	Suggestions     []string    `json:"suggestions,omitempty"`
	Message         string      `json:"message,omitempty"`
}

type apiChart struct {
	SeriesID   string         `json:"series_id"`
	Name       string         `json:"name"`
	Unit       string         `json:"unit,omitempty"`
	Source     string         `json:"source,omitempty"`
	Dates      []string       `json:"dates"`
	Values     []float64      `json:"values"`
	Latest     *float64       `json:"latest,omitempty"`
	LatestDate string         `json:"latest_date,omitempty"`
	YoYChange  *float64       `json:"yoy_change,omitempty"`
	YoYType    string         `json:"yoy_type,omitempty"`
	Bullets    []string       `json:"bullets,omitempty"`
	SA         bool           `json:"sa,omitempty"`
	Recessions []apiRecession `json:"recessions,omitempty"`
	Traces     []apiTrace     `json:"traces,omitempty"`
	IsCombined bool           `json:"is_combined,omitempty"`
}

type apiRecession struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type apiTrace struct {
	Name   string    `json:"name"`
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

type apiMetric struct {
	SeriesID string   `json:"series_id,omitempty"`
	Label    string   `json:"label"`
	Value    float64  `json:"value"`
	Unit     string   `json:"unit,omitempty"`
	Change   *float64 `json:"change,omitempty"`
}

type apiSource struct {
	Name   string   `json:"name"`
	URL    string   `json:"url,omitempty"`
	Series []string `json:"series,omitempty"`
}

// apiSearchResponse is the non-streaming endpoint's complete result.
type apiSearchResponse struct {
	Summary         string      `json:"summary"`
	Charts          []apiChart  `json:"charts"`
	Metrics         []apiMetric `json:"metrics,omitempty"`
	TemporalContext string      `json:"temporal_context,omitempty"`
	FedSEPHTML      *string     `json:"fed_sep_html,omitempty"`
	RecessionHTML   *string     `json:"recession_html,omitempty"`
	PolymarketHTML  *string     `json:"polymarket_html,omitempty"`
	Sources         []apiSource `json:"sources,omitempty"`
	Suggestions     []string    `json:"suggestions,omitempty"`
}

// apiErrorResponse is the JSON error body on non-2xx responses.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

func convertCharts(in []apiChart) []econstats.Chart {
	if len(in) == 0 {
		return nil
	}
	out := make([]econstats.Chart, len(in))
	for i, c := range in {
		out[i] = econstats.Chart{
			SeriesID:           c.SeriesID,
			Name:               c.Name,
			Unit:               c.Unit,
			Source:             c.Source,
			Dates:              c.Dates,
			Values:             c.Values,
			Latest:             c.Latest,
			LatestDate:         c.LatestDate,
			YoYChange:          c.YoYChange,
			YoYType:            econstats.YoYType(c.YoYType),
			Bullets:            c.Bullets,
			SeasonallyAdjusted: c.SA,
			Recessions:         convertRecessions(c.Recessions),
			Traces:             convertTraces(c.Traces),
			IsCombined:         c.IsCombined,
		}
	}
	return out
}

func convertRecessions(in []apiRecession) []econstats.Recession {
	if len(in) == 0 {
		return nil
	}
	out := make([]econstats.Recession, len(in))
	for i, r := range in {
		out[i] = econstats.Recession{Start: r.Start, End: r.End}
	}
	return out
}

func convertTraces(in []apiTrace) []econstats.Trace {
	if len(in) == 0 {
		return nil
	}
	out := make([]econstats.Trace, len(in))
	for i, tr := range in {
		out[i] = econstats.Trace{Name: tr.Name, Dates: tr.Dates, Values: tr.Values}
	}
	return out
}

func convertMetrics(in []apiMetric) []econstats.Metric {
	if len(in) == 0 {
		return nil
	}
	out := make([]econstats.Metric, len(in))
	for i, m := range in {
		out[i] = econstats.Metric{
			SeriesID: m.SeriesID,
			Label:    m.Label,
			Value:    m.Value,
			Unit:     m.Unit,
			Change:   m.Change,
		}
	}
	return out
}

func convertSources(in []apiSource) []econstats.SourceInfo {
	if len(in) == 0 {
		return nil
	}
	out := make([]econstats.SourceInfo, len(in))
	for i, s := range in {
		out[i] = econstats.SourceInfo{Name: s.Name, URL: s.URL, Series: s.Series}
	}
	return out
}

func convertFragments(fedSEP, recession, polymarket *string) econstats.Fragments {
	return econstats.Fragments{
		FedSEP:     fedSEP,
		Recession:  recession,
		Polymarket: polymarket,
	}
}

func convertResult(resp apiSearchResponse) *econstats.Result {
	return &econstats.Result{
		Summary:         resp.Summary,
		Charts:          convertCharts(resp.Charts),
		Metrics:         convertMetrics(resp.Metrics),
		TemporalContext: resp.TemporalContext,
		Fragments:       convertFragments(resp.FedSEPHTML, resp.RecessionHTML, resp.PolymarketHTML),
		Sources:         convertSources(resp.Sources),
		Suggestions:     resp.Suggestions,
	}
}
