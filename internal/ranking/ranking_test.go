package ranking

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"clipscout/internal/candidate"
)

var t0 = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func cand(id string, offset time.Duration, gender candidate.Gender) candidate.Candidate {
	return candidate.Candidate{
		ID:        id,
		Status:    candidate.StatusUnreviewed,
		Gender:    gender,
		CreatedAt: t0.Add(offset),
	}
}

func TestNumbersExample(t *testing.T) {
	all := []candidate.Candidate{
		cand("c1", 0, candidate.GenderFemale),
		cand("c2", time.Minute, candidate.GenderMale),
		cand("c3", 2*time.Minute, candidate.GenderFemale),
	}
	got := Numbers(all)
	want := map[string]int{"c1": 1, "c2": 1, "c3": 2}
	for id, n := range want {
		if got[id] != n {
			t.Fatalf("%s: got #%d, want #%d", id, got[id], n)
		}
	}
}

func TestNumbersOtherUsesWholeSetPosition(t *testing.T) {
	all := []candidate.Candidate{
		cand("a", 0, candidate.GenderMale),
		cand("b", time.Minute, candidate.GenderOther),
		cand("c", 2*time.Minute, candidate.GenderFemale),
		cand("d", 3*time.Minute, candidate.GenderNone),
	}
	got := Numbers(all)
	if got["b"] != 2 || got["d"] != 4 {
		t.Fatalf("other/null numbering: got b=%d d=%d", got["b"], got["d"])
	}
	if got["a"] != 1 || got["c"] != 1 {
		t.Fatalf("gendered numbering: got a=%d c=%d", got["a"], got["c"])
	}
}

func TestNumbersTieBreaksByID(t *testing.T) {
	all := []candidate.Candidate{
		cand("z", 0, candidate.GenderMale),
		cand("a", 0, candidate.GenderMale),
	}
	got := Numbers(all)
	if got["a"] != 1 || got["z"] != 2 {
		t.Fatalf("expected id tie break, got %+v", got)
	}
}

func TestNumbersArePermutationsRegardlessOfInputOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	genders := []candidate.Gender{candidate.GenderMale, candidate.GenderFemale, candidate.GenderOther, candidate.GenderNone}
	var all []candidate.Candidate
	for i := 0; i < 60; i++ {
		all = append(all, cand(fmt.Sprintf("id-%02d", i), time.Duration(i)*time.Second, genders[rng.Intn(len(genders))]))
	}
	baseline := Numbers(all)

	for round := 0; round < 5; round++ {
		shuffled := append([]candidate.Candidate(nil), all...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := Numbers(shuffled)
		for id, n := range baseline {
			if got[id] != n {
				t.Fatalf("round %d: %s numbered %d, want %d", round, id, got[id], n)
			}
		}
	}

	for _, g := range []candidate.Gender{candidate.GenderMale, candidate.GenderFemale} {
		seen := map[int]bool{}
		last := 0
		for _, c := range all {
			if c.Gender != g {
				continue
			}
			n := baseline[c.ID]
			if seen[n] || n != last+1 {
				t.Fatalf("%s numbering not sequential at %s: %d after %d", g, c.ID, n, last)
			}
			seen[n] = true
			last = n
		}
	}
}

func TestDeletingEarliestMaleShiftsMalesAndLaterOther(t *testing.T) {
	all := []candidate.Candidate{
		cand("m1", 0, candidate.GenderMale),
		cand("f1", time.Minute, candidate.GenderFemale),
		cand("m2", 2*time.Minute, candidate.GenderMale),
		cand("o1", 3*time.Minute, candidate.GenderOther),
		cand("m3", 4*time.Minute, candidate.GenderMale),
		cand("f2", 5*time.Minute, candidate.GenderFemale),
	}
	before := Numbers(all)
	after := Numbers(all[1:])

	for _, id := range []string{"m2", "m3"} {
		if after[id] != before[id]-1 {
			t.Fatalf("%s: expected %d, got %d", id, before[id]-1, after[id])
		}
	}
	for _, id := range []string{"f1", "f2"} {
		if after[id] != before[id] {
			t.Fatalf("%s: female numbering changed %d -> %d", id, before[id], after[id])
		}
	}
	// other/null count every earlier candidate, so a deleted male ahead of
	// them shifts them too.
	if before["o1"] != 4 || after["o1"] != 3 {
		t.Fatalf("o1: expected #4 -> #3, got #%d -> #%d", before["o1"], after["o1"])
	}
}

func TestAnnotateKeepsFullSetNumbers(t *testing.T) {
	all := []candidate.Candidate{
		cand("f1", 0, candidate.GenderFemale),
		cand("f2", time.Minute, candidate.GenderFemale),
	}
	annotated := Annotate(all, all[1:])
	if len(annotated) != 1 || annotated[0].ID != "f2" || annotated[0].Number != 2 {
		t.Fatalf("unexpected annotation: %+v", annotated)
	}
}

func TestComputeStats(t *testing.T) {
	all := []candidate.Candidate{
		cand("a", 0, candidate.GenderMale),
		cand("b", time.Hour, candidate.GenderFemale),
		cand("c", 13*time.Hour, candidate.GenderFemale),
		cand("d", 40*time.Hour, candidate.GenderNone),
	}
	all[1].Status = candidate.StatusContact
	all[2].Status = candidate.StatusPass

	stats := Compute(all, time.UTC)
	if stats.Total != 4 || stats.Male != 1 || stats.Female != 2 || stats.Other != 1 {
		t.Fatalf("unexpected gender counts: %+v", stats)
	}
	if stats.MalePercent != 33.3 || stats.FemalePercent != 66.7 {
		t.Fatalf("unexpected ratios: %v / %v", stats.MalePercent, stats.FemalePercent)
	}
	if stats.ByStatus["unreviewed"] != 2 || stats.ByStatus["contact"] != 1 || stats.ByStatus["pass"] != 1 || stats.ByStatus["stay"] != 0 {
		t.Fatalf("unexpected status counts: %+v", stats.ByStatus)
	}
	if len(stats.Daily) != 3 {
		t.Fatalf("expected 3 days, got %+v", stats.Daily)
	}
	if stats.Daily[0] != (DayCount{Date: "2025-01-10", Total: 2, Male: 1, Female: 1}) {
		t.Fatalf("day 0: %+v", stats.Daily[0])
	}
	if stats.Daily[1] != (DayCount{Date: "2025-01-11", Total: 1, Female: 1}) {
		t.Fatalf("day 1: %+v", stats.Daily[1])
	}
	if stats.Daily[2] != (DayCount{Date: "2025-01-12", Total: 1, Other: 1}) {
		t.Fatalf("day 2: %+v", stats.Daily[2])
	}
	if stats.MaxDaily != 2 {
		t.Fatalf("max daily: %d", stats.MaxDaily)
	}
}

func TestComputeUsesLocationForDayBoundary(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2025-01-10 20:00 UTC is already 2025-01-11 in Tokyo.
	all := []candidate.Candidate{cand("a", 8*time.Hour, candidate.GenderMale)}
	if got := Compute(all, time.UTC).Daily[0].Date; got != "2025-01-10" {
		t.Fatalf("utc day: %s", got)
	}
	if got := Compute(all, tokyo).Daily[0].Date; got != "2025-01-11" {
		t.Fatalf("tokyo day: %s", got)
	}
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute(nil, nil)
	if stats.Total != 0 || stats.MalePercent != 0 || len(stats.Daily) != 0 {
		t.Fatalf("unexpected empty stats: %+v", stats)
	}
	if len(stats.ByStatus) != 4 {
		t.Fatalf("expected all statuses present, got %+v", stats.ByStatus)
	}
}
