package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Section is one narrative block of the dashboard walkthrough: a heading,
// commentary, and the charts rendered beneath it. Chart names refer to the
// bundle's payload names.
type Section struct {
	Title  string
	Body   template.HTML
	Charts []string
}

// Narrative is the full static walkthrough shown above the filter panel
type Narrative struct {
	Intro    template.HTML
	Sections []Section
}

const introText = `
As you read through the analysis, keep in mind that these visualizations are
interactive. Most plots let you zoom in on a region by clicking and dragging,
and when a legend appears in the upper right you can click a legend item to
toggle that group on and off.

This dataset is comprised of car accident claims recorded over a two-month
period, from January 1, 2015 to March 1, 2015.
`

const genderText = `
"Gender" refers to the policy holder (liable party) for this dataset. Female
policyholders tend to pay slightly larger claims than male policyholders: the
mean claim amount for females is $51,169, 3.94% higher than the male mean of
$49,230, and the female median of $57,120 sits 2.46% above the male median of
$55,750. The mean gives an overall average but is pulled around by extreme
claims; the median is the better sense of a typical claim. Both metrics point
the same way, with female policyholders reporting marginally higher amounts.
`

const ageText = `
The ages in this dataset fall in a fairly narrow range, with 80% of claimants
between 28 and 51 years old. As age increases so does the average claim
amount, and claimants aged 60-65 carry the highest average claims at $58,900.
The upward trend in claim size with age likely reflects older drivers owning
more expensive cars, which leads to larger settlements.
`

const autoMakeText = `
Nissan, Saab, and Subaru make up the largest shares of manufacturers in the
data at roughly 9% each. Claims involving Ford vehicles have the highest
median claim amount at around $63,500, followed closely by BMW at $62,480.
The spread between the largest and smallest average claim per manufacturer is
about $11,000, from BMW at $54,000 down to Toyota at $43,000.
`

const autoYearText = `
Older model years tend to receive higher average and median claim amounts
than newer models. Vehicles from the mid-to-late 1990s and early 2000s show
averages ranging from $47,134 to $57,535, suggesting costlier repairs,
harder-to-source parts, and perhaps worse outcomes from aging safety
features. Model years from 2010 onward average between $42,853 and $48,323,
consistent with improved vehicle safety and durability standards.
`

const stateText = `
New York makes up the largest proportion of claims in the data and also has
the largest mean and median claim values, at roughly $54,250 and $58,675.
With the exception of Ohio, every state represented is on the east coast.
Ohio has the smallest average and median claims while also contributing the
fewest claims overall.
`

const accidentTypeText = `
Claims involving moving vehicles, whether single or multi-vehicle, have
similarly sized claim values, whereas claims for unattended vehicles are much
smaller. The gap is explained by the absence of physical injuries in vehicle
theft or parked-car damage. Multi-vehicle and single-vehicle collisions
average roughly $62,000 and $63,500 per claim; parked car and vehicle theft
incidents average just $5,300 and $5,500.
`

const collisionTypeText = `
Front collisions account for 24.4% of all claims, with an average payout of
$64,777 and a median of $63,950. That follows from front-end collisions
endangering the driver, any front-seat occupants, and the engine itself. Side
and rear collisions receive incrementally smaller claims, and unattended
vehicle claims substantially less.
`

const severityText = `
The two most frequent severities are minor damage at 42% of all claims and
total losses at 32.4%. Major damage incidents carry the highest average claim
at almost $64,000, with total losses close behind at $61,792. Total losses
trailing major damage likely reflects insurers preferring to total out a car
rather than pay repair estimates above its appraised value. Minor damage
claims average $48,600, and trivial damage claims just $5,300.
`

const injuriesText = `
The data holds a balanced proportion of claims with zero, one, and two bodily
injuries. Claims without injuries have a median value of $56,700, while those
with one injury surprisingly sit slightly lower at $54,000. Claims involving
two injuries have the largest median at $57,935, as expected.
`

const authoritiesText = `
Four categories of authorities appear in the data: Fire, Ambulance, Police,
and "Other". Among the named authorities, cases involving the fire department
received the largest claims, averaging about $61,439 with a median of
$60,000. Incidents where an ambulance was contacted average roughly $60,357
with a median of $59,300, and police interventions average a much lower
$44,193 with a median of $51,800. The "Other" category tops them all with an
average near $65,156 and a median of $64,080. While police do handle issues
that produce large claims, they handle the overwhelming majority of small
claim instances; notice in the scatter how only police appear on claims below
roughly $18,000.
`

const policeReportText = `
Incidents with a police report available average $52,083, approximately 11.5%
higher than incidents without a report at $46,738. The median with a report
is $57,110, about 3% lower than the $55,500 median without one. Cases where
report availability is unknown show a mean of $52,171 and a median of
$58,050.
`

// renderNarrative converts the walkthrough commentary from markdown once at
// startup
func renderNarrative() Narrative {
	return Narrative{
		Intro: renderMarkdown(introText),
		Sections: []Section{
			{Title: "1. Gender", Body: renderMarkdown(genderText),
				Charts: []string{"gender_kde"}},
			{Title: "2. Age", Body: renderMarkdown(ageText),
				Charts: []string{"age_histogram", "age_bracket_bar", "age_bracket_trend", "median_claim_by_age"}},
			{Title: "3. Auto Manufacturer", Body: renderMarkdown(autoMakeText),
				Charts: []string{"make_model_treemap", "auto_make_bar", "auto_model_bar"}},
			{Title: "4. Model Year", Body: renderMarkdown(autoYearText),
				Charts: []string{"auto_year_bar", "auto_year_trend"}},
			{Title: "5. State", Body: renderMarkdown(stateText),
				Charts: []string{"state_pie", "state_bar", "state_boxes"}},
			{Title: "6. Accident Type", Body: renderMarkdown(accidentTypeText),
				Charts: []string{"accident_type_pie", "accident_type_bar"}},
			{Title: "7. Collision Type", Body: renderMarkdown(collisionTypeText),
				Charts: []string{"collision_type_pie", "collision_type_bar"}},
			{Title: "8. Incident Severity", Body: renderMarkdown(severityText),
				Charts: []string{"incident_severity_pie", "incident_severity_bar"}},
			{Title: "9. Number of Bodily Injuries", Body: renderMarkdown(injuriesText),
				Charts: []string{"bodily_injuries_pie", "bodily_injuries_bar"}},
			{Title: "10. Authorities Contacted", Body: renderMarkdown(authoritiesText),
				Charts: []string{"authorities_pie", "authorities_bar", "authorities_scatter"}},
			{Title: "11. Police Report", Body: renderMarkdown(policeReportText),
				Charts: []string{"police_report_pie", "police_report_bar"}},
		},
	}
}

func renderMarkdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(src), p, renderer))
}
