//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Application links one opportunity with one product and tracks its pipeline state.
// OpportunityID and ProductID are not checked against the other collections.
type Application struct {
	ID            uuid.UUID `json:"id" validate:"required"`
	OpportunityID uuid.UUID `json:"opportunityId" validate:"required"`
	ProductID     uuid.UUID `json:"productId" validate:"required"`

	Status        ApplicationStatus `json:"status" validate:"required,oneof=identified researching drafting ready submitted interview accepted rejected withdrawn expired"`
	StatusHistory []StatusChange    `json:"statusHistory" validate:"dive"`

	Deadline           *time.Time `json:"deadline,omitempty"`
	SubmittedAt        *time.Time `json:"submittedAt,omitempty"`
	ResponseReceivedAt *time.Time `json:"responseReceivedAt,omitempty"`

	FitScore *int   `json:"fitScore,omitempty" validate:"omitempty,min=0,max=100"`
	FitNotes string `json:"fitNotes,omitempty"`

	Materials *Materials `json:"materials,omitempty"`

	FollowUps []FollowUp `json:"followUps" validate:"dive"`
	Contacts  []Contact  `json:"contacts" validate:"dive"`

	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt" validate:"required"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// StatusChange is one entry of the append-only status audit trail.
type StatusChange struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=identified researching drafting ready submitted interview accepted rejected withdrawn expired"`
	Date   time.Time         `json:"date" validate:"required"`
	Note   string            `json:"note,omitempty"`
}

// Materials are the application-specific answers and attachments.
type Materials struct {
	Answers        map[string]string `json:"answers,omitempty"` // question -> answer
	PitchDeckURL   string            `json:"pitchDeckUrl,omitempty" validate:"omitempty,url"`
	VideoURL       string            `json:"videoUrl,omitempty" validate:"omitempty,url"`
	AdditionalDocs []Document        `json:"additionalDocs" validate:"dive"`
}

// Document is a named link attached to an application.
type Document struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

// FollowUp is a logged interaction. Follow-ups are never edited once added.
type FollowUp struct {
	ID             uuid.UUID    `json:"id" validate:"required"`
	Date           time.Time    `json:"date" validate:"required"`
	Type           FollowUpType `json:"type" validate:"required,oneof=email call meeting note"`
	Summary        string       `json:"summary"`
	NextAction     string       `json:"nextAction,omitempty"`
	NextActionDate *time.Time   `json:"nextActionDate,omitempty"`
}

// Contact is a person involved with an application.
type Contact struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// NewApplication creates an application in the given initial status.
// The initial status is recorded as the first history entry.
func NewApplication(opportunityID, productID uuid.UUID, status ApplicationStatus, now time.Time) Application {
	if status == "" {
		status = StatusIdentified
	}
	a := Application{
		ID:            uuid.New(),
		OpportunityID: opportunityID,
		ProductID:     productID,
		Status:        status,
		StatusHistory: []StatusChange{{Status: status, Date: now}},
		CreatedAt:     now,
	}
	a.ApplyDefaults()
	return a
}

// NewFollowUp creates a follow-up with a fresh id.
func NewFollowUp(kind FollowUpType, summary string, now time.Time) FollowUp {
	return FollowUp{
		ID:      uuid.New(),
		Date:    now,
		Type:    kind,
		Summary: summary,
	}
}

// UnmarshalJSON decodes an application. An absent status decodes as identified.
func (a *Application) UnmarshalJSON(data []byte) error {
	type alias Application
	decoded := alias{Status: StatusIdentified}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*a = Application(decoded)
	a.ApplyDefaults()
	return nil
}

// UnmarshalJSON decodes materials, defaulting additional documents to an empty list.
func (m *Materials) UnmarshalJSON(data []byte) error {
	type alias Materials
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*m = Materials(decoded)
	m.AdditionalDocs = emptyIfNil(m.AdditionalDocs)
	return nil
}

// ApplyDefaults replaces absent lists with empty ones so they are never written as null.
func (a *Application) ApplyDefaults() {
	if a.Status == "" {
		a.Status = StatusIdentified
	}
	a.StatusHistory = emptyIfNil(a.StatusHistory)
	a.FollowUps = emptyIfNil(a.FollowUps)
	a.Contacts = emptyIfNil(a.Contacts)
	if a.Materials != nil {
		a.Materials.AdditionalDocs = emptyIfNil(a.Materials.AdditionalDocs)
	}
}

// TransitionTo moves the application to status and appends one history entry.
// The first move to submitted stamps SubmittedAt; later moves never overwrite it.
func (a *Application) TransitionTo(status ApplicationStatus, note string, at time.Time) {
	a.Status = status
	a.StatusHistory = append(a.StatusHistory, StatusChange{
		Status: status,
		Date:   at,
		Note:   strings.TrimSpace(note),
	})
	if status == StatusSubmitted && a.SubmittedAt == nil {
		submitted := at
		a.SubmittedAt = &submitted
	}
}

// HasIDPrefix reports whether the application id starts with prefix.
func (a *Application) HasIDPrefix(prefix string) bool {
	return prefix != "" && strings.HasPrefix(a.ID.String(), strings.ToLower(prefix))
}

// Validate checks the application against its field rules.
func (a *Application) Validate() error {
	return validateStruct(a)
}

// ApplicationPatch is a partial update. Nil fields leave the record untouched.
type ApplicationPatch struct {
	Status             *ApplicationStatus
	StatusNote         string
	Deadline           *time.Time
	ResponseReceivedAt *time.Time
	FitScore           *int
	FitNotes           *string
	Notes              *string
	Materials          *Materials

	// FollowUps and Contacts are appended, never replaced.
	FollowUps []FollowUp
	Contacts  []Contact
}

// Apply merges the patch into a and stamps UpdatedAt.
func (p ApplicationPatch) Apply(a *Application, now time.Time) {
	if p.Status != nil {
		a.TransitionTo(*p.Status, p.StatusNote, now)
	}
	if p.Deadline != nil {
		a.Deadline = p.Deadline
	}
	if p.ResponseReceivedAt != nil {
		a.ResponseReceivedAt = p.ResponseReceivedAt
	}
	if p.FitScore != nil {
		a.FitScore = p.FitScore
	}
	if p.FitNotes != nil {
		a.FitNotes = *p.FitNotes
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.Materials != nil {
		a.Materials = p.Materials
	}
	a.FollowUps = append(a.FollowUps, p.FollowUps...)
	a.Contacts = append(a.Contacts, p.Contacts...)

	updated := now
	a.UpdatedAt = &updated
	a.ApplyDefaults()
}
