// Package types provides the record definitions tracked by accelerate: funding
// opportunities, the products that apply to them, and the applications linking the two.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// OpportunityType is the kind of funding offer. It also decides which collection
// document an opportunity is stored in.
type OpportunityType string

// Opportunity types
const (
	TypeAccelerator OpportunityType = "accelerator"
	TypeGrant       OpportunityType = "grant"
	TypeAngel       OpportunityType = "angel"
)

// OpportunityTypes lists every opportunity type in collection order.
var OpportunityTypes = []OpportunityType{TypeAccelerator, TypeGrant, TypeAngel}

// Valid reports whether t is a known opportunity type.
func (t OpportunityType) Valid() bool {
	for _, known := range OpportunityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseOpportunityType converts user input into an OpportunityType.
func ParseOpportunityType(s string) (OpportunityType, error) {
	t := OpportunityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown opportunity type %q (want one of %s)", s, joinValues(OpportunityTypes))
	}
	return t, nil
}

// Stage is a company funding stage.
type Stage string

// Funding stages
const (
	StageIdea    Stage = "idea"
	StagePreSeed Stage = "pre-seed"
	StageSeed    Stage = "seed"
	StageSeriesA Stage = "series-a"
	StageSeriesB Stage = "series-b"
	StageGrowth  Stage = "growth"
)

// Stages lists every stage from earliest to latest.
var Stages = []Stage{StageIdea, StagePreSeed, StageSeed, StageSeriesA, StageSeriesB, StageGrowth}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStage converts user input into a Stage.
func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !stage.Valid() {
		return "", fmt.Errorf("unknown stage %q (want one of %s)", s, joinValues(Stages))
	}
	return stage, nil
}

// ApplicationStatus is the pipeline state of an application.
// The declaration order is the display order; any status may follow any other.
type ApplicationStatus string

// Application statuses
const (
	StatusIdentified  ApplicationStatus = "identified"
	StatusResearching ApplicationStatus = "researching"
	StatusDrafting    ApplicationStatus = "drafting"
	StatusReady       ApplicationStatus = "ready"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusInterview   ApplicationStatus = "interview"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
	StatusExpired     ApplicationStatus = "expired"
)

// Statuses lists every application status in display order.
var Statuses = []ApplicationStatus{
	StatusIdentified,
	StatusResearching,
	StatusDrafting,
	StatusReady,
	StatusSubmitted,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
	StatusExpired,
}

// ActiveStatuses are the statuses that count towards the active pipeline.
var ActiveStatuses = Statuses[:6]

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether s is one of the in-progress statuses.
func (s ApplicationStatus) Active() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// ParseStatus converts user input into an ApplicationStatus.
func ParseStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (want one of %s)", s, joinValues(Statuses))
	}
	return status, nil
}

// FollowUpType is the channel of a follow-up interaction.
type FollowUpType string

// Follow-up types
const (
	FollowUpEmail   FollowUpType = "email"
	FollowUpCall    FollowUpType = "call"
	FollowUpMeeting FollowUpType = "meeting"
	FollowUpNote    FollowUpType = "note"
)

// FollowUpTypes lists every follow-up type.
var FollowUpTypes = []FollowUpType{FollowUpEmail, FollowUpCall, FollowUpMeeting, FollowUpNote}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
