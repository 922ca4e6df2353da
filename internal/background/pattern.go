package background

import "strings"

// Wildcard is the placeholder substituted by a frame number.
const Wildcard = '*'

// Inference is the outcome of InferPattern.
type Inference struct {
	Pattern  string
	Prefix   string
	Suffix   string
	Wildcard bool

	// NonConforming lists the input names the pattern does not reproduce.
	// They are reported, never used to shape the pattern.
	NonConforming []string
}

// InferPattern derives a prefix*suffix pattern from user-selected file
// names. Only the first two names shape the pattern; every name is then
// checked against it. InferPattern never fails.
func InferPattern(names []string) Inference {
	switch len(names) {
	case 0:
		return Inference{}
	case 1:
		return Inference{Pattern: names[0], Prefix: names[0]}
	}

	first := []rune(names[0])
	second := []rune(names[1])

	p := 0
	for p < len(first) && p < len(second) && first[p] == second[p] {
		p++
	}

	// Digits belong to the frame number, not the prefix.
	for p > 0 && isDigit(first[p-1]) {
		p--
	}

	// A trailing dash is a minus sign unless every name carries it.
	if p > 0 && first[p-1] == '-' && !allHaveRuneAt(names, p-1, '-') {
		p--
	}

	rest := first[p:]
	n := 0
	if len(rest) > 0 {
		switch {
		case rest[0] == '-':
			n = 1
			for n < len(rest) && isDigit(rest[n]) {
				n++
			}
		case isDigit(rest[0]):
			for n < len(rest) && isDigit(rest[n]) {
				n++
			}
		}
	}

	inf := Inference{
		Prefix:   string(first[:p]),
		Suffix:   string(rest[n:]),
		Wildcard: true,
	}
	inf.Pattern = inf.Prefix + string(Wildcard) + inf.Suffix

	for _, name := range names {
		if !conforms(name, inf.Prefix, inf.Suffix) {
			inf.NonConforming = append(inf.NonConforming, name)
		}
	}
	return inf
}

// SplitPattern splits a pattern around its last wildcard. Without a
// wildcard the whole pattern is returned as prefix.
func SplitPattern(pattern string) (prefix, suffix string, wildcard bool) {
	i := strings.LastIndexByte(pattern, Wildcard)
	if i < 0 {
		return pattern, "", false
	}
	return pattern[:i], pattern[i+1:], true
}

// conforms reports whether name is prefix + (empty | integer) + suffix.
func conforms(name, prefix, suffix string) bool {
	if len(name) < len(prefix)+len(suffix) {
		return false
	}
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return false
	}
	middle := name[len(prefix) : len(name)-len(suffix)]
	return middle == "" || isInteger(middle)
}

// isInteger accepts an optional minus sign followed by ASCII digits.
func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func allHaveRuneAt(names []string, i int, want rune) bool {
	for _, name := range names {
		rs := []rune(name)
		if i >= len(rs) || rs[i] != want {
			return false
		}
	}
	return true
}
