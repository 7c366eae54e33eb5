// Package attribution extracts the claiming participant from a claim notification
package attribution

import (
	"regexp"
	"strconv"
)

var (
	claimedBy = regexp.MustCompile(`Claimed By\s+<@!?(\d+)>`)
	mention   = regexp.MustCompile(`<@!?(\d+)>`)
)

// Source is the part of a notification that can name a claimant
type Source struct {
	Body        string
	FieldValues []string // in notification order
	Footer      string
}

// Strategy looks for a participant id in one part of the source
type Strategy func(Source) (uint64, bool)

// Strategies are tried in order and the first match wins
var Strategies = []Strategy{
	FromBody,
	FromFields,
	FromFooter,
}

// Resolve runs Strategies in order
func Resolve(src Source) (uint64, bool) {
	for _, s := range Strategies {
		if id, ok := s(src); ok {
			return id, true
		}
	}
	return 0, false
}

// FromBody matches a mention anchored after the "Claimed By" marker
func FromBody(src Source) (uint64, bool) {
	return firstID(claimedBy, src.Body)
}

// FromFields matches the first bare mention across field values
func FromFields(src Source) (uint64, bool) {
	for _, v := range src.FieldValues {
		if id, ok := firstID(mention, v); ok {
			return id, true
		}
	}
	return 0, false
}

// FromFooter matches a bare mention in the footer
func FromFooter(src Source) (uint64, bool) {
	return firstID(mention, src.Footer)
}

// firstID returns the first submatch that parses as a uint64
// a digit run too long for uint64 is skipped, not truncated
func firstID(re *regexp.Regexp, s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err == nil {
			return id, true
		}
	}
	return 0, false
}
