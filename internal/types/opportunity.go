//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is applied to funding ranges that omit a currency.
const DefaultCurrency = "USD"

// Opportunity is an accelerator program, grant or angel offer a product can apply to.
type Opportunity struct {
	ID             uuid.UUID       `json:"id" validate:"required"`
	Name           string          `json:"name" validate:"required,min=1"`
	Type           OpportunityType `json:"type" validate:"required,oneof=accelerator grant angel"`
	Description    string          `json:"description,omitempty"`
	URL            string          `json:"url,omitempty" validate:"omitempty,url"`
	ApplicationURL string          `json:"applicationUrl,omitempty" validate:"omitempty,url"`

	FundingAmount *FundingRange `json:"fundingAmount,omitempty"`
	EquityTaken   *EquityRange  `json:"equityTaken,omitempty"`

	Deadline          *time.Time         `json:"deadline,omitempty"`
	ApplicationWindow *ApplicationWindow `json:"applicationWindow,omitempty"`
	CohortStart       *time.Time         `json:"cohortStart,omitempty"`
	ProgramDuration   string             `json:"programDuration,omitempty"` // e.g. "3 months"

	FocusAreas     []string `json:"focusAreas"`
	StagesAccepted []Stage  `json:"stagesAccepted" validate:"dive,oneof=idea pre-seed seed series-a series-b growth"`
	Industries     []string `json:"industries"`

	Location string `json:"location,omitempty"`
	Remote   bool   `json:"remote"`

	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Notes        string   `json:"notes,omitempty"`

	Source      string     `json:"source,omitempty"` // where the opportunity was found
	SourceURL   string     `json:"sourceUrl,omitempty" validate:"omitempty,url"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" validate:"required"`
}

// FundingRange is the cash amount an opportunity offers.
type FundingRange struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency"`
}

// UnmarshalJSON decodes a funding range, defaulting the currency to USD when absent.
func (f *FundingRange) UnmarshalJSON(data []byte) error {
	type alias FundingRange
	decoded := alias{Currency: DefaultCurrency}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*f = FundingRange(decoded)
	return nil
}

// EquityRange is the percentage of equity an opportunity takes.
type EquityRange struct {
	Min *float64 `json:"min,omitempty" validate:"omitempty,min=0,max=100"`
	Max *float64 `json:"max,omitempty" validate:"omitempty,min=0,max=100"`
}

// ApplicationWindow is the period in which applications are accepted.
type ApplicationWindow struct {
	Opens  *time.Time `json:"opens,omitempty"`
	Closes *time.Time `json:"closes,omitempty"`
}

// NewOpportunity creates an opportunity with a fresh id and creation time.
func NewOpportunity(name string, oppType OpportunityType, now time.Time) Opportunity {
	o := Opportunity{
		ID:        uuid.New(),
		Name:      name,
		Type:      oppType,
		CreatedAt: now,
	}
	o.ApplyDefaults()
	return o
}

// UnmarshalJSON decodes an opportunity and fills in list defaults.
func (o *Opportunity) UnmarshalJSON(data []byte) error {
	type alias Opportunity
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*o = Opportunity(decoded)
	o.ApplyDefaults()
	return nil
}

// ApplyDefaults replaces absent lists with empty ones so they are never written as null.
func (o *Opportunity) ApplyDefaults() {
	o.FocusAreas = emptyIfNil(o.FocusAreas)
	o.StagesAccepted = emptyIfNil(o.StagesAccepted)
	o.Industries = emptyIfNil(o.Industries)
	o.Requirements = emptyIfNil(o.Requirements)
	o.Benefits = emptyIfNil(o.Benefits)
	if o.FundingAmount != nil && o.FundingAmount.Currency == "" {
		o.FundingAmount.Currency = DefaultCurrency
	}
}

// AcceptsStage reports whether stage is in the accepted stages list.
func (o *Opportunity) AcceptsStage(stage Stage) bool {
	for _, s := range o.StagesAccepted {
		if s == stage {
			return true
		}
	}
	return false
}

// Validate checks the opportunity against its field rules.
func (o *Opportunity) Validate() error {
	return validateStruct(o)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
