package background

import "strings"

// ValidationState classifies pattern text while it is being typed.
type ValidationState int

const (
	// Acceptable text can be committed as is.
	Acceptable ValidationState = iota
	// Intermediate text keeps the field editable; Fixup normalizes it on
	// commit. Pattern text is never rejected outright.
	Intermediate
)

func (s ValidationState) String() string {
	if s == Intermediate {
		return "intermediate"
	}
	return "acceptable"
}

// Validate checks pattern text as typed. More than one wildcard, or a path
// separator anywhere after a wildcard, leaves the text Intermediate.
func Validate(input string) ValidationState {
	first := strings.IndexByte(input, Wildcard)
	if first < 0 {
		return Acceptable
	}
	if strings.Count(input, string(Wildcard)) > 1 {
		return Intermediate
	}
	if strings.ContainsAny(input[first+1:], separators) {
		return Intermediate
	}
	return Acceptable
}

// Fixup normalizes committed pattern text: only the last wildcard is kept,
// and it is dropped as well when a separator follows it.
func Fixup(input string) string {
	last := strings.LastIndexByte(input, Wildcard)
	if last < 0 {
		return input
	}
	head := strings.ReplaceAll(input[:last], string(Wildcard), "")
	tail := input[last+1:]
	if strings.ContainsAny(tail, separators) {
		return head + tail
	}
	return head + string(Wildcard) + tail
}

const separators = `/\`
