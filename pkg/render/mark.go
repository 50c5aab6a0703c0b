package render

import (
	"slices"
	"strings"
)

// Role classifies a character of a word form relative to a stem placement.
type Role int

const (
	Stem   Role = iota
	Prefix      // before every stem character
	Suffix      // after every stem character
	Infix       // between stem characters
	Affix       // no stem at all
)

func (r Role) String() string {
	switch r {
	case Stem:
		return "stem"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Infix:
		return "infix"
	case Affix:
		return "affix"
	}
	return "unknown"
}

// Segment is a maximal run of characters sharing a role.
type Segment struct {
	Text string
	Role Role
}

// NullSymbol stands in for an empty string in reports.
const NullSymbol = "∅"

// Null renders the empty string as NullSymbol.
func Null(s string) string {
	if s == "" {
		return NullSymbol
	}
	return s
}

// Mark splits word into segments given the rune offsets of its stem
// characters. Offsets outside the word are ignored.
func Mark(word string, placement []int) []Segment {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}

	inStem := make([]bool, len(runes))
	first, last := -1, -1
	for _, pos := range placement {
		if pos < 0 || pos >= len(runes) {
			continue
		}
		inStem[pos] = true
		if first == -1 || pos < first {
			first = pos
		}
		last = max(last, pos)
	}

	var segments []Segment
	var b strings.Builder
	current := Role(-1)
	for i, r := range runes {
		role := classify(i, inStem, first, last)
		if role != current && b.Len() > 0 {
			segments = append(segments, Segment{Text: b.String(), Role: current})
			b.Reset()
		}
		current = role
		b.WriteRune(r)
	}
	segments = append(segments, Segment{Text: b.String(), Role: current})
	return segments
}

func classify(i int, inStem []bool, first, last int) Role {
	switch {
	case first == -1:
		return Affix
	case inStem[i]:
		return Stem
	case i < first:
		return Prefix
	case i > last:
		return Suffix
	default:
		return Infix
	}
}

// Roles lists the distinct roles present in segments, in order of appearance.
func Roles(segments []Segment) []Role {
	var roles []Role
	for _, s := range segments {
		if !slices.Contains(roles, s.Role) {
			roles = append(roles, s.Role)
		}
	}
	return roles
}
