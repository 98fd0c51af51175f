package session

import "strings"

// normalizeAnswer makes answer comparison insensitive to case and
// surrounding whitespace.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckAnswer compares submitted answers against the correct set. Single
// answers compare directly; multi-select requires set equality, so order
// and duplicates do not matter.
func CheckAnswer(submitted, correct []string) bool {
	if len(correct) == 0 {
		return false
	}

	want := make(map[string]bool, len(correct))
	for _, c := range correct {
		want[normalizeAnswer(c)] = true
	}

	got := make(map[string]bool, len(submitted))
	for _, s := range submitted {
		got[normalizeAnswer(s)] = true
	}

	if len(got) != len(want) {
		return false
	}
	for k := range want {
		if !got[k] {
			return false
		}
	}
	return true
}

// SessionScore is the percentage of questions answered correctly.
func SessionScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}
