package charts

import (
	"context"

	"golang.org/x/sync/errgroup"

	"claimscope/domain/dataset"
)

// Bundle is the full set of descriptive chart payloads for the static part
// of the dashboard. It is derived once per dataset snapshot; only the
// filter-driven charts are recomputed per interaction.
type Bundle struct {
	GenderKDE          KDEPayload       `json:"gender_kde"`
	AgeHistogram       HistogramPayload `json:"age_histogram"`
	AgeBracketBar      BarPayload       `json:"age_bracket_bar"`
	AgeBracketTrend    LinePayload      `json:"age_bracket_trend"`
	MedianClaimByAge   LinePayload      `json:"median_claim_by_age"`
	MakeModelTreemap   TreemapPayload   `json:"make_model_treemap"`
	AutoMakeBar        BarPayload       `json:"auto_make_bar"`
	AutoModelBar       BarPayload       `json:"auto_model_bar"`
	AutoYearBar        BarPayload       `json:"auto_year_bar"`
	AutoYearTrend      LinePayload      `json:"auto_year_trend"`
	StatePie           PiePayload       `json:"state_pie"`
	StateBar           BarPayload       `json:"state_bar"`
	StateBoxes         []BoxPayload     `json:"state_boxes"`
	AccidentTypePie    PiePayload       `json:"accident_type_pie"`
	AccidentTypeBar    BarPayload       `json:"accident_type_bar"`
	CollisionTypePie   PiePayload       `json:"collision_type_pie"`
	CollisionTypeBar   BarPayload       `json:"collision_type_bar"`
	SeverityPie        PiePayload       `json:"incident_severity_pie"`
	SeverityBar        BarPayload       `json:"incident_severity_bar"`
	InjuriesPie        PiePayload       `json:"bodily_injuries_pie"`
	InjuriesBar        BarPayload       `json:"bodily_injuries_bar"`
	AuthoritiesPie     PiePayload       `json:"authorities_pie"`
	AuthoritiesBar     BarPayload       `json:"authorities_bar"`
	AuthoritiesScatter ScatterPayload   `json:"authorities_scatter"`
	PoliceReportPie    PiePayload       `json:"police_report_pie"`
	PoliceReportBar    BarPayload       `json:"police_report_bar"`
}

// BuildBundle computes every static chart payload, fanning the independent
// builders out across goroutines. Each builder only reads the immutable
// table, so the fan-out needs no coordination beyond the group wait.
func BuildBundle(ctx context.Context, t *dataset.Table) (*Bundle, error) {
	b := &Bundle{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error { b.GenderKDE = GenderKDE(t); return nil })
	g.Go(func() error { b.AgeHistogram = AgeHistogram(t); return nil })
	g.Go(func() error { b.AgeBracketBar = AgeBracketBar(t); return nil })
	g.Go(func() error { b.AgeBracketTrend = TrendByGroup(t, "age_bracket"); return nil })
	g.Go(func() error { b.MedianClaimByAge = MedianClaimByAge(t); return nil })
	g.Go(func() error { b.MakeModelTreemap = MakeModelTreemap(t); return nil })
	g.Go(func() error { b.AutoMakeBar = HorizontalBar(t, "auto_make"); return nil })
	g.Go(func() error { b.AutoModelBar = HorizontalBar(t, "auto_model"); return nil })
	g.Go(func() error { b.AutoYearBar = MeanMedianBar(t, "auto_year"); return nil })
	g.Go(func() error { b.AutoYearTrend = TrendByGroup(t, "auto_year"); return nil })
	g.Go(func() error { b.StatePie = Pie(t, "state"); return nil })
	g.Go(func() error { b.StateBar = StateBar(t); return nil })
	g.Go(func() error { b.StateBoxes = StateBoxes(t); return nil })
	g.Go(func() error { b.AccidentTypePie = Pie(t, "accident_type"); return nil })
	g.Go(func() error { b.AccidentTypeBar = MeanMedianBar(t, "accident_type"); return nil })
	g.Go(func() error { b.CollisionTypePie = Pie(t, "collision_type"); return nil })
	g.Go(func() error { b.CollisionTypeBar = MeanMedianBar(t, "collision_type"); return nil })
	g.Go(func() error { b.SeverityPie = Pie(t, "incident_severity"); return nil })
	g.Go(func() error { b.SeverityBar = MeanMedianBar(t, "incident_severity"); return nil })
	g.Go(func() error { b.InjuriesPie = Pie(t, "bodily_injuries"); return nil })
	g.Go(func() error { b.InjuriesBar = MeanMedianBar(t, "bodily_injuries"); return nil })
	g.Go(func() error { b.AuthoritiesPie = Pie(t, "authorities_contacted"); return nil })
	g.Go(func() error { b.AuthoritiesBar = MeanMedianBar(t, "authorities_contacted"); return nil })
	g.Go(func() error { b.AuthoritiesScatter = ClaimAgeScatter(t, nil, "authorities_contacted"); return nil })
	g.Go(func() error { b.PoliceReportPie = Pie(t, "police_report_available"); return nil })
	g.Go(func() error { b.PoliceReportBar = MeanMedianBar(t, "police_report_available"); return nil })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}

// Payload looks up a single chart payload by its JSON name
func (b *Bundle) Payload(name string) (interface{}, bool) {
	byName := map[string]interface{}{
		"gender_kde":            b.GenderKDE,
		"age_histogram":         b.AgeHistogram,
		"age_bracket_bar":       b.AgeBracketBar,
		"age_bracket_trend":     b.AgeBracketTrend,
		"median_claim_by_age":   b.MedianClaimByAge,
		"make_model_treemap":    b.MakeModelTreemap,
		"auto_make_bar":         b.AutoMakeBar,
		"auto_model_bar":        b.AutoModelBar,
		"auto_year_bar":         b.AutoYearBar,
		"auto_year_trend":       b.AutoYearTrend,
		"state_pie":             b.StatePie,
		"state_bar":             b.StateBar,
		"state_boxes":           b.StateBoxes,
		"accident_type_pie":     b.AccidentTypePie,
		"accident_type_bar":     b.AccidentTypeBar,
		"collision_type_pie":    b.CollisionTypePie,
		"collision_type_bar":    b.CollisionTypeBar,
		"incident_severity_pie": b.SeverityPie,
		"incident_severity_bar": b.SeverityBar,
		"bodily_injuries_pie":   b.InjuriesPie,
		"bodily_injuries_bar":   b.InjuriesBar,
		"authorities_pie":       b.AuthoritiesPie,
		"authorities_bar":       b.AuthoritiesBar,
		"authorities_scatter":   b.AuthoritiesScatter,
		"police_report_pie":     b.PoliceReportPie,
		"police_report_bar":     b.PoliceReportBar,
	}
	p, ok := byName[name]
	return p, ok
}
