package ranking

import (
	"sort"

	"clipscout/internal/candidate"
)

// Numbered pairs a candidate with its display number.
type Numbered struct {
	candidate.Candidate
	Number int
}

// Numbers assigns each candidate its 1-based display number keyed by id.
// Male and female candidates are numbered within their own gender. Other and
// unrecorded genders take their position in the whole set. Order is ascending
// creation time with ties broken by id.
func Numbers(all []candidate.Candidate) map[string]int {
	ordered := sortedByCreation(all)
	numbers := make(map[string]int, len(ordered))
	var male, female int
	for i, c := range ordered {
		switch c.Gender {
		case candidate.GenderMale:
			male++
			numbers[c.ID] = male
		case candidate.GenderFemale:
			female++
			numbers[c.ID] = female
		default:
			numbers[c.ID] = i + 1
		}
	}
	return numbers
}

// Annotate numbers subset against the full snapshot all, preserving the
// order of subset. A filtered listing keeps the numbers of the full set.
func Annotate(all, subset []candidate.Candidate) []Numbered {
	numbers := Numbers(all)
	out := make([]Numbered, 0, len(subset))
	for _, c := range subset {
		out = append(out, Numbered{Candidate: c, Number: numbers[c.ID]})
	}
	return out
}

func sortedByCreation(all []candidate.Candidate) []candidate.Candidate {
	ordered := make([]candidate.Candidate, len(all))
	copy(ordered, all)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return ordered
}
