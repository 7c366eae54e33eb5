// Package domain holds the claim pipeline types and the ports it depends on
package domain

import (
	"strconv"

	"claimboard/internal/core/attribution"
	"claimboard/internal/core/rarity"
)

// ParticipantID is the numeric identity of a chat participant
type ParticipantID uint64

// String renders the id as decimal
func (p ParticipantID) String() string { return strconv.FormatUint(uint64(p), 10) }

// Field is one ordered name/value pair of a notification
type Field struct {
	Name  string `json:"name" validate:"max=256"`
	Value string `json:"value" validate:"max=1024"`
}

// ClaimEvent is one inbound notification as posted by the chat transport
// ids travel as strings because snowflakes overflow JSON numbers in most clients
type ClaimEvent struct {
	OriginID     uint64  `json:"origin_id,string" validate:"required" example:"1280000000000000001"`
	ChannelScope uint64  `json:"channel_scope,string" example:"1100000000000000000"`
	EventID      string  `json:"event_id" validate:"required,max=64,printascii" example:"1300000000000000042"`
	Edit         bool    `json:"edit,omitempty"`
	Category     string  `json:"category_text,omitempty" validate:"max=256" example:"Auto Summon Claimed!"`
	Body         string  `json:"body_text,omitempty" validate:"max=4096" example:"Claimed By <@123>"`
	Fields       []Field `json:"fields,omitempty" validate:"max=25,dive"`
	Footer       string  `json:"footer_text,omitempty" validate:"max=2048"`
}

// Empty reports whether the event carries no inspectable text
func (e ClaimEvent) Empty() bool {
	return e.Category == "" && e.Body == "" && len(e.Fields) == 0 && e.Footer == ""
}

// AttributionSource exposes the parts attribution reads
func (e ClaimEvent) AttributionSource() attribution.Source {
	vals := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		vals = append(vals, f.Value)
	}
	return attribution.Source{Body: e.Body, FieldValues: vals, Footer: e.Footer}
}

// Fragments lists the text in rarity scan order
func (e ClaimEvent) Fragments() []string {
	fs := make([]rarity.Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		fs = append(fs, rarity.Field{Name: f.Name, Value: f.Value})
	}
	return rarity.Fragments(e.Category, e.Body, fs, e.Footer)
}

// Participant is the slice of a member the pipeline reads
type Participant struct {
	ID    ParticipantID
	Roles []string
}

// Reason names why an event ended where it did
type Reason string

// Terminal reasons, gates first
const (
	ReasonEngineOff          Reason = "engine_off"
	ReasonUntrustedOrigin    Reason = "untrusted_origin"
	ReasonScopeMismatch      Reason = "scope_mismatch"
	ReasonSelfOrigin         Reason = "self_origin"
	ReasonNoise              Reason = "noise"
	ReasonAnnouncement       Reason = "announcement"
	ReasonClaimOnCreate      Reason = "claim_on_create"
	ReasonUnattributed       Reason = "unattributed"
	ReasonUnknownParticipant Reason = "unknown_participant"
	ReasonUntiered           Reason = "untiered"
	ReasonDuplicate          Reason = "duplicate"
	ReasonScored             Reason = "scored"
)

// Recordable reports whether the reason belongs in the claim ledger
// everything from attribution onwards is a genuine claim worth keeping
func (r Reason) Recordable() bool {
	switch r {
	case ReasonUnattributed, ReasonUnknownParticipant, ReasonUntiered, ReasonDuplicate, ReasonScored:
		return true
	}
	return false
}

// Outcome is the terminal state of one event
type Outcome struct {
	Reason      Reason        `json:"reason" example:"scored"`
	EventID     string        `json:"event_id"`
	Participant ParticipantID `json:"participant,string,omitempty"`
	Tier        string        `json:"tier,omitempty" example:"SSR"`
	Bonus       int64         `json:"bonus,omitempty"`
	Delta       int64         `json:"delta,omitempty" example:"13"`
	Total       int64         `json:"total,omitempty" example:"13"`
}

// Scored reports whether the event changed a score
func (o Outcome) Scored() bool { return o.Reason == ReasonScored }
