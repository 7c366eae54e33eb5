// Package claim decides whether a notification title describes a completed reward claim
package claim

import (
	"strings"

	"golang.org/x/text/cases"
)

// Kind is the classification of a notification title
type Kind uint8

const (
	// Noise is anything from the trusted origin that is not a summon notification
	Noise Kind = iota
	// NotAClaim is a plain summon announcement that carries no reward yet
	NotAClaim
	// Qualifying is a completed, attributable claim
	Qualifying
)

// String returns a short label used in logs
func (k Kind) String() string {
	switch k {
	case NotAClaim:
		return "announcement"
	case Qualifying:
		return "claim"
	default:
		return "noise"
	}
}

const (
	phraseSummon  = "auto summon"
	phraseClaimed = "claimed"
	phraseClaim   = phraseSummon + " " + phraseClaimed
)

// Classify folds the title and matches the summon phrases
// a Caser is stateful, so one is built per call
func Classify(title string) Kind {
	t := cases.Fold().String(title)
	switch {
	case strings.Contains(t, phraseClaim):
		return Qualifying
	case strings.Contains(t, phraseSummon) && !strings.Contains(t, phraseClaimed):
		return NotAClaim
	default:
		return Noise
	}
}
