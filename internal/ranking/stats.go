package ranking

import (
	"math"
	"sort"
	"time"

	"clipscout/internal/candidate"
)

// DayCount is the number of registrations on one local calendar day.
type DayCount struct {
	Date   string `json:"date"`
	Total  int    `json:"total"`
	Male   int    `json:"male"`
	Female int    `json:"female"`
	Other  int    `json:"other"`
}

// Stats aggregates the candidate set for the statistics dashboard.
type Stats struct {
	Total  int `json:"total"`
	Male   int `json:"male"`
	Female int `json:"female"`
	// Other counts "other" and unrecorded genders.
	Other int `json:"other"`
	// MalePercent and FemalePercent share the gendered total, one decimal.
	MalePercent   float64        `json:"malePercent"`
	FemalePercent float64        `json:"femalePercent"`
	ByStatus      map[string]int `json:"byStatus"`
	Daily         []DayCount     `json:"daily"`
	MaxDaily      int            `json:"maxDaily"`
}

const dayLayout = "2006-01-02"

// Compute summarizes all. Day buckets use loc; nil means time.Local.
func Compute(all []candidate.Candidate, loc *time.Location) Stats {
	if loc == nil {
		loc = time.Local
	}
	stats := Stats{
		Total:    len(all),
		ByStatus: make(map[string]int, len(candidate.Statuses())),
		Daily:    []DayCount{},
	}
	for _, status := range candidate.Statuses() {
		stats.ByStatus[string(status)] = 0
	}

	days := make(map[string]*DayCount)
	for _, c := range all {
		key := c.CreatedAt.In(loc).Format(dayLayout)
		day, ok := days[key]
		if !ok {
			day = &DayCount{Date: key}
			days[key] = day
		}
		day.Total++

		switch c.Gender {
		case candidate.GenderMale:
			stats.Male++
			day.Male++
		case candidate.GenderFemale:
			stats.Female++
			day.Female++
		default:
			stats.Other++
			day.Other++
		}
		stats.ByStatus[string(c.Status)]++
	}

	if gendered := stats.Male + stats.Female; gendered > 0 {
		stats.MalePercent = percent(stats.Male, gendered)
		stats.FemalePercent = percent(stats.Female, gendered)
	}

	for _, day := range days {
		stats.Daily = append(stats.Daily, *day)
		if day.Total > stats.MaxDaily {
			stats.MaxDaily = day.Total
		}
	}
	sort.Slice(stats.Daily, func(i, j int) bool {
		return stats.Daily[i].Date < stats.Daily[j].Date
	})
	return stats
}

func percent(part, whole int) float64 {
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
