package ui

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"claimscope/domain/charts"
	"claimscope/internal/analysis"
)

// chartKinds maps bundle payload names to the client-side renderer used for
// them
var chartKinds = map[string]string{
	"gender_kde":            "kde",
	"age_histogram":         "histogram",
	"age_bracket_bar":       "bar",
	"age_bracket_trend":     "line",
	"median_claim_by_age":   "line",
	"make_model_treemap":    "treemap",
	"auto_make_bar":         "bar",
	"auto_model_bar":        "bar",
	"auto_year_bar":         "bar",
	"auto_year_trend":       "line",
	"state_pie":             "pie",
	"state_bar":             "bar",
	"state_boxes":           "boxes",
	"accident_type_pie":     "pie",
	"accident_type_bar":     "bar",
	"collision_type_pie":    "pie",
	"collision_type_bar":    "bar",
	"incident_severity_pie": "pie",
	"incident_severity_bar": "bar",
	"bodily_injuries_pie":   "pie",
	"bodily_injuries_bar":   "bar",
	"authorities_pie":       "pie",
	"authorities_bar":       "bar",
	"authorities_scatter":   "scatter",
	"police_report_pie":     "pie",
	"police_report_bar":     "bar",
}

type chartView struct {
	DomID   string
	Kind    string
	Payload interface{}
}

type sectionView struct {
	Title  string
	Body   template.HTML
	Charts []chartView
}

type controlView struct {
	Name     string
	Label    string
	Choices  []string
	Selected string
}

type tableRowView struct {
	Statistic string
	Selected  string
	Excluded  string
	All       string
}

type filterView struct {
	SelectedCount int
	ExcludedCount int
	TotalCount    int
	Rows          []tableRowView
	Advisory      string
	Label         string
	Histogram     *chartView
	Box           *chartView
	ComparisonBar chartView
	Scatter       chartView
}

type formView struct {
	AgeMin       int
	AgeMax       int
	BoundMin     int
	BoundMax     int
	Controls     []controlView
	ScatterGroup string
}

type dashboardData struct {
	Title     string
	Intro     template.HTML
	Sections  []sectionView
	Form      formView
	Filter    filterView
	RowCount  int
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	req := a.engine.DefaultRequest()
	a.renderTemplate(w, "dashboard.html", a.dashboardData(req))
}

func (a *App) handleFilter(w http.ResponseWriter, r *http.Request) {
	req := a.parseRequest(r)
	if isHTMX(r) {
		a.renderTemplate(w, "filter_results", a.filterView(req))
		return
	}
	a.renderTemplate(w, "dashboard.html", a.dashboardData(req))
}

func (a *App) dashboardData(req analysis.Request) dashboardData {
	return dashboardData{
		Title:    "Car Accident Claims Analysis",
		Intro:    a.narrative.Intro,
		Sections: a.sectionViews(),
		Form:     a.formView(req),
		Filter:   a.filterView(req),
		RowCount: a.engine.Table().Rows(),
	}
}

func (a *App) sectionViews() []sectionView {
	out := make([]sectionView, 0, len(a.narrative.Sections))
	for _, s := range a.narrative.Sections {
		view := sectionView{Title: s.Title, Body: s.Body}
		for _, name := range s.Charts {
			payload, ok := a.bundle.Payload(name)
			if !ok {
				continue
			}
			view.Charts = append(view.Charts, chartView{
				DomID:   name,
				Kind:    chartKinds[name],
				Payload: payload,
			})
		}
		out = append(out, view)
	}
	return out
}

func (a *App) formView(req analysis.Request) formView {
	lo, hi := a.engine.AgeBounds()
	form := formView{
		AgeMin:       int(req.AgeMin),
		AgeMax:       int(req.AgeMax),
		BoundMin:     int(lo),
		BoundMax:     int(hi),
		ScatterGroup: req.ScatterGroup,
	}
	if math.IsNaN(req.AgeMin) {
		form.AgeMin = form.BoundMin
	}
	if math.IsNaN(req.AgeMax) {
		form.AgeMax = form.BoundMax
	}
	for _, ff := range a.engine.Filters() {
		form.Controls = append(form.Controls, controlView{
			Name:     ff.Field.Name,
			Label:    ff.Field.Label,
			Choices:  ff.Choices,
			Selected: req.Categories[ff.Field.Name],
		})
	}
	return form
}

func (a *App) filterView(req analysis.Request) filterView {
	result := a.engine.Apply(req)

	view := filterView{
		SelectedCount: result.SelectedCount,
		ExcludedCount: result.ExcludedCount,
		TotalCount:    result.TotalCount,
		Advisory:      result.Decision.Advisory,
		Label:         result.Decision.Label,
		ComparisonBar: chartView{DomID: "filter_comparison_bar", Kind: "comparison", Payload: sanitizeComparison(result.ComparisonBar)},
		Scatter:       chartView{DomID: "filter_scatter", Kind: "scatter", Payload: result.Scatter},
	}
	for _, row := range result.Table.Rows {
		view.Rows = append(view.Rows, tableRowView{
			Statistic: row.Statistic,
			Selected:  formatCell(row.Selected),
			Excluded:  formatCell(row.Excluded),
			All:       formatCell(row.All),
		})
	}
	if result.Histogram != nil {
		view.Histogram = &chartView{DomID: "filter_histogram", Kind: "histogram", Payload: *result.Histogram}
	}
	if result.Box != nil {
		view.Box = &chartView{DomID: "filter_box", Kind: "box", Payload: *result.Box}
	}
	return view
}

// parseRequest maps form values onto one interaction's filter state. Absent
// or malformed values degrade to "no filter"; a stale control must never
// produce an error page.
func (a *App) parseRequest(r *http.Request) analysis.Request {
	req := a.engine.DefaultRequest()

	q := r.URL.Query()
	if v, err := strconv.ParseFloat(q.Get("age_min"), 64); err == nil {
		req.AgeMin = v
	}
	if v, err := strconv.ParseFloat(q.Get("age_max"), 64); err == nil {
		req.AgeMax = v
	}
	for _, ff := range a.engine.Filters() {
		if choice := q.Get(ff.Field.Name); choice != "" {
			req.Categories[ff.Field.Name] = choice
		}
	}
	req.ScatterGroup = q.Get("scatter_group")
	return req
}

// comparisonPayload mirrors the grouped comparison bar with missing values
// as JSON null. The template's json helper refuses NaN, which an empty
// selection would otherwise produce.
type comparisonPayload struct {
	Title      string     `json:"title"`
	Statistics []string   `json:"statistics"`
	Selected   []*float64 `json:"selected"`
	Excluded   []*float64 `json:"excluded"`
	All        []*float64 `json:"all"`
}

func sanitizeComparison(p charts.ComparisonBarPayload) comparisonPayload {
	return comparisonPayload{
		Title:      p.Title,
		Statistics: p.Statistics,
		Selected:   dropMissing(p.Selected),
		Excluded:   dropMissing(p.Excluded),
		All:        dropMissing(p.All),
	}
}

func dropMissing(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		if !math.IsNaN(vs[i]) {
			out[i] = &vs[i]
		}
	}
	return out
}

// formatCell renders one comparison table value. Missing statistics show as
// a dash, whole numbers without decimals.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
