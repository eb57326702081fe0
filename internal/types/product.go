//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product is a startup profile that applies to opportunities.
type Product struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required,min=1"`
	Tagline     string    `json:"tagline,omitempty"`
	Description string    `json:"description,omitempty"`

	Stage      Stage    `json:"stage,omitempty" validate:"omitempty,oneof=idea pre-seed seed series-a series-b growth"`
	Industries []string `json:"industries"`
	FocusAreas []string `json:"focusAreas"`

	TeamSize *int      `json:"teamSize,omitempty" validate:"omitempty,gt=0"`
	Founders []Founder `json:"founders" validate:"dive"`

	Founded           string `json:"founded,omitempty"` // "2024" or "2024-01"
	Incorporated      bool   `json:"incorporated"`
	IncorporationType string `json:"incorporationType,omitempty"`

	Traction      *Traction      `json:"traction,omitempty"`
	FundingRaised *FundingRaised `json:"fundingRaised,omitempty"`

	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	PitchDeckURL string `json:"pitchDeckUrl,omitempty" validate:"omitempty,url"`
	DemoURL      string `json:"demoUrl,omitempty" validate:"omitempty,url"`
	GithubURL    string `json:"githubUrl,omitempty" validate:"omitempty,url"`

	Location string `json:"location,omitempty"`
	Remote   bool   `json:"remote"`

	ApplicationContent *ApplicationContent `json:"applicationContent,omitempty"`

	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt" validate:"required"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Founder is a member of the founding team.
type Founder struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Bio      string `json:"bio,omitempty"`
}

// Traction holds headline usage and revenue metrics.
type Traction struct {
	Users      *float64 `json:"users,omitempty"`
	Revenue    *float64 `json:"revenue,omitempty"`
	MRR        *float64 `json:"mrr,omitempty"`
	ARR        *float64 `json:"arr,omitempty"`
	Growth     string   `json:"growth,omitempty"` // e.g. "20% MoM"
	Highlights []string `json:"highlights"`
}

// FundingRaised summarizes money the product has already raised.
type FundingRaised struct {
	Total     *float64 `json:"total,omitempty"`
	LastRound string   `json:"lastRound,omitempty"`
	Investors []string `json:"investors"`
}

// ApplicationContent is narrative copy reused across applications.
type ApplicationContent struct {
	ProblemStatement string   `json:"problemStatement,omitempty"`
	Solution         string   `json:"solution,omitempty"`
	UniqueValue      string   `json:"uniqueValue,omitempty"`
	MarketSize       string   `json:"marketSize,omitempty"`
	BusinessModel    string   `json:"businessModel,omitempty"`
	Competition      string   `json:"competition,omitempty"`
	WhyNow           string   `json:"whyNow,omitempty"`
	WhyUs            string   `json:"whyUs,omitempty"`
	AskAmount        *float64 `json:"askAmount,omitempty"`
	UseOfFunds       string   `json:"useOfFunds,omitempty"`
}

// NewProduct creates a product with a fresh id and creation time. Products are remote by default.
func NewProduct(name string, now time.Time) Product {
	p := Product{
		ID:        uuid.New(),
		Name:      name,
		Remote:    true,
		CreatedAt: now,
	}
	p.ApplyDefaults()
	return p
}

// UnmarshalJSON decodes a product. An absent remote flag decodes as true.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	decoded := alias{Remote: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Product(decoded)
	p.ApplyDefaults()
	return nil
}

// ApplyDefaults replaces absent lists with empty ones so they are never written as null.
func (p *Product) ApplyDefaults() {
	p.Industries = emptyIfNil(p.Industries)
	p.FocusAreas = emptyIfNil(p.FocusAreas)
	p.Founders = emptyIfNil(p.Founders)
	if p.Traction != nil {
		p.Traction.Highlights = emptyIfNil(p.Traction.Highlights)
	}
	if p.FundingRaised != nil {
		p.FundingRaised.Investors = emptyIfNil(p.FundingRaised.Investors)
	}
}

// Validate checks the product against its field rules.
func (p *Product) Validate() error {
	return validateStruct(p)
}
