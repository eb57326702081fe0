package prompt

import (
	"fmt"
	"time"

	"github.com/jonathan/accelerate/internal/types"
)

// Opportunity walks through the fields of a new opportunity.
func (p *Prompter) Opportunity(now time.Time) (types.Opportunity, error) {
	var o types.Opportunity

	name, err := p.Required("Name")
	if err != nil {
		return o, err
	}
	typeIdx, err := p.Select("Type", stringsOf(types.OpportunityTypes), 0)
	if err != nil {
		return o, err
	}
	o = types.NewOpportunity(name, types.OpportunityTypes[typeIdx], now)

	if o.Description, err = p.Input("Description", ""); err != nil {
		return o, err
	}
	if o.URL, err = p.Input("Website URL", ""); err != nil {
		return o, err
	}
	if o.ApplicationURL, err = p.Input("Application URL", ""); err != nil {
		return o, err
	}

	fundingMin, err := p.Float("Minimum funding (USD)")
	if err != nil {
		return o, err
	}
	fundingMax, err := p.Float("Maximum funding (USD)")
	if err != nil {
		return o, err
	}
	if fundingMin != nil || fundingMax != nil {
		o.FundingAmount = &types.FundingRange{Min: fundingMin, Max: fundingMax, Currency: types.DefaultCurrency}
	}

	equityMin, err := p.Float("Minimum equity taken (%)")
	if err != nil {
		return o, err
	}
	equityMax, err := p.Float("Maximum equity taken (%)")
	if err != nil {
		return o, err
	}
	if equityMin != nil || equityMax != nil {
		o.EquityTaken = &types.EquityRange{Min: equityMin, Max: equityMax}
	}

	if o.Deadline, err = p.Date("Deadline"); err != nil {
		return o, err
	}

	stageIdx, err := p.MultiSelect("Stages accepted", stringsOf(types.Stages))
	if err != nil {
		return o, err
	}
	for _, i := range stageIdx {
		o.StagesAccepted = append(o.StagesAccepted, types.Stages[i])
	}

	if o.FocusAreas, err = p.List("Focus areas"); err != nil {
		return o, err
	}
	if o.Location, err = p.Input("Location", ""); err != nil {
		return o, err
	}
	if o.Remote, err = p.Confirm("Remote friendly?", false); err != nil {
		return o, err
	}
	return o, nil
}

// Product walks through the fields of a new product, with an optional traction section.
func (p *Prompter) Product(now time.Time) (types.Product, error) {
	var prod types.Product

	name, err := p.Required("Product name")
	if err != nil {
		return prod, err
	}
	prod = types.NewProduct(name, now)

	if prod.Tagline, err = p.Input("Tagline", ""); err != nil {
		return prod, err
	}
	if prod.Description, err = p.Input("Description", ""); err != nil {
		return prod, err
	}

	stageIdx, err := p.Select("Stage", stringsOf(types.Stages), 0)
	if err != nil {
		return prod, err
	}
	prod.Stage = types.Stages[stageIdx]

	if prod.Industries, err = p.List("Industries"); err != nil {
		return prod, err
	}
	if prod.FocusAreas, err = p.List("Focus areas"); err != nil {
		return prod, err
	}
	if prod.TeamSize, err = p.Int("Team size", 1, 1_000_000); err != nil {
		return prod, err
	}
	if prod.Founded, err = p.Input("Founded (YYYY or YYYY-MM)", ""); err != nil {
		return prod, err
	}
	if prod.Incorporated, err = p.Confirm("Incorporated?", false); err != nil {
		return prod, err
	}
	if prod.Website, err = p.Input("Website", ""); err != nil {
		return prod, err
	}
	if prod.Location, err = p.Input("Location", ""); err != nil {
		return prod, err
	}
	if prod.Remote, err = p.Confirm("Remote team?", true); err != nil {
		return prod, err
	}

	addTraction, err := p.Confirm("Add traction metrics?", false)
	if err != nil || !addTraction {
		return prod, err
	}
	traction := &types.Traction{}
	if traction.Users, err = p.Float("Users"); err != nil {
		return prod, err
	}
	if traction.MRR, err = p.Float("MRR (USD)"); err != nil {
		return prod, err
	}
	if traction.Revenue, err = p.Float("Total revenue (USD)"); err != nil {
		return prod, err
	}
	if traction.Growth, err = p.Input("Growth rate (e.g. 20% MoM)", ""); err != nil {
		return prod, err
	}
	if traction.Highlights, err = p.List("Highlights"); err != nil {
		return prod, err
	}
	prod.Traction = traction
	return prod, nil
}

// InitialStatuses are the statuses offered when an application is created.
var InitialStatuses = []types.ApplicationStatus{types.StatusIdentified, types.StatusResearching, types.StatusDrafting}

// Application links a chosen opportunity and product into a new application.
// Both lists must be non-empty.
func (p *Prompter) Application(opps []types.Opportunity, products []types.Product, now time.Time) (types.Application, error) {
	var a types.Application

	oppLabels := make([]string, len(opps))
	for i, o := range opps {
		oppLabels[i] = fmt.Sprintf("%s (%s)", o.Name, o.Type)
	}
	oppIdx, err := p.Select("Opportunity", oppLabels, 0)
	if err != nil {
		return a, err
	}

	productLabels := make([]string, len(products))
	for i, prod := range products {
		productLabels[i] = prod.Name
	}
	productIdx, err := p.Select("Product", productLabels, 0)
	if err != nil {
		return a, err
	}

	statusIdx, err := p.Select("Initial status", stringsOf(InitialStatuses), 0)
	if err != nil {
		return a, err
	}
	a = types.NewApplication(opps[oppIdx].ID, products[productIdx].ID, InitialStatuses[statusIdx], now)

	if a.Deadline, err = p.Date("Deadline"); err != nil {
		return a, err
	}
	if a.FitScore, err = p.Int("Fit score (0-100)", 0, 100); err != nil {
		return a, err
	}
	if a.FitNotes, err = p.Input("Fit notes", ""); err != nil {
		return a, err
	}
	return a, nil
}

// StatusChange asks for the next status of an application and an optional note.
func (p *Prompter) StatusChange(current types.ApplicationStatus) (types.ApplicationPatch, error) {
	def := 0
	for i, s := range types.Statuses {
		if s == current {
			def = i
		}
	}
	idx, err := p.Select("New status", stringsOf(types.Statuses), def)
	if err != nil {
		return types.ApplicationPatch{}, err
	}
	note, err := p.Input("Note", "")
	if err != nil {
		return types.ApplicationPatch{}, err
	}
	status := types.Statuses[idx]
	return types.ApplicationPatch{Status: &status, StatusNote: note}, nil
}

// FollowUp asks for a logged interaction.
func (p *Prompter) FollowUp(now time.Time) (types.FollowUp, error) {
	idx, err := p.Select("Type", stringsOf(types.FollowUpTypes), 0)
	if err != nil {
		return types.FollowUp{}, err
	}
	summary, err := p.Required("Summary")
	if err != nil {
		return types.FollowUp{}, err
	}
	f := types.NewFollowUp(types.FollowUpTypes[idx], summary, now)
	if f.NextAction, err = p.Input("Next action", ""); err != nil {
		return f, err
	}
	if f.NextAction != "" {
		if f.NextActionDate, err = p.Date("Next action date"); err != nil {
			return f, err
		}
	}
	return f, nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
