// Package pipeline answers questions about the tracked funding pipeline: which
// opportunities fit a stage or keyword, which application a short id names, and how
// the applications are distributed over their statuses. Nothing here reads or writes
// documents; callers pass in what the store returned.
package pipeline

import (
	"strings"

	"github.com/jonathan/accelerate/internal/types"
)

// Unknown is shown in place of a name when a reference does not resolve.
const Unknown = "Unknown"

// FilterByStage keeps the opportunities that accept stage. An empty stage keeps everything.
func FilterByStage(opps []types.Opportunity, stage types.Stage) []types.Opportunity {
	if stage == "" {
		return opps
	}
	result := []types.Opportunity{}
	for i := range opps {
		if opps[i].AcceptsStage(stage) {
			result = append(result, opps[i])
		}
	}
	return result
}

// Search returns the opportunities whose name, description, focus areas or industries
// contain keyword, ignoring case. The keyword is matched as given, surrounding spaces included.
func Search(opps []types.Opportunity, keyword string) []types.Opportunity {
	needle := strings.ToLower(keyword)
	result := []types.Opportunity{}
	for i := range opps {
		if matches(&opps[i], needle) {
			result = append(result, opps[i])
		}
	}
	return result
}

func matches(o *types.Opportunity, needle string) bool {
	if strings.Contains(strings.ToLower(o.Name), needle) ||
		strings.Contains(strings.ToLower(o.Description), needle) {
		return true
	}
	for _, area := range o.FocusAreas {
		if strings.Contains(strings.ToLower(area), needle) {
			return true
		}
	}
	for _, industry := range o.Industries {
		if strings.Contains(strings.ToLower(industry), needle) {
			return true
		}
	}
	return false
}

// FindByIDPrefix returns the first application, in stored order, whose id starts with prefix.
func FindByIDPrefix(apps []types.Application, prefix string) (*types.Application, bool) {
	for i := range apps {
		if apps[i].HasIDPrefix(prefix) {
			return &apps[i], true
		}
	}
	return nil, false
}

// Names resolves opportunity and product ids to display names.
type Names struct {
	opportunities map[string]string
	products      map[string]string
}

// NewNames indexes the given records by id.
func NewNames(opps []types.Opportunity, products []types.Product) *Names {
	n := &Names{
		opportunities: make(map[string]string, len(opps)),
		products:      make(map[string]string, len(products)),
	}
	for _, o := range opps {
		n.opportunities[o.ID.String()] = o.Name
	}
	for _, p := range products {
		n.products[p.ID.String()] = p.Name
	}
	return n
}

// Opportunity returns the name of the opportunity an application points at.
func (n *Names) Opportunity(a *types.Application) string {
	if name, ok := n.opportunities[a.OpportunityID.String()]; ok {
		return name
	}
	return Unknown
}

// Product returns the name of the product an application points at.
func (n *Names) Product(a *types.Application) string {
	if name, ok := n.products[a.ProductID.String()]; ok {
		return name
	}
	return Unknown
}

// StatusGroup is the applications sharing one status.
type StatusGroup struct {
	Status       types.ApplicationStatus
	Applications []types.Application
}

// GroupByStatus buckets applications by status in display order, skipping empty buckets.
// Within a bucket the stored order is kept.
func GroupByStatus(apps []types.Application) []StatusGroup {
	buckets := make(map[types.ApplicationStatus][]types.Application)
	for _, a := range apps {
		buckets[a.Status] = append(buckets[a.Status], a)
	}

	groups := []StatusGroup{}
	for _, status := range types.Statuses {
		if len(buckets[status]) > 0 {
			groups = append(groups, StatusGroup{Status: status, Applications: buckets[status]})
		}
	}
	return groups
}

// FilterByStatus keeps the applications in status. An empty status keeps everything.
func FilterByStatus(apps []types.Application, status types.ApplicationStatus) []types.Application {
	if status == "" {
		return apps
	}
	result := []types.Application{}
	for _, a := range apps {
		if a.Status == status {
			result = append(result, a)
		}
	}
	return result
}
