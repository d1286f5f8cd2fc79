// Package aggregate derives non-conformance counts and display glyphs from
// checklist records. Every function is pure and leaves its input untouched.
//
// An item is non-conforming when its status is regular or bad. Items that
// were never inspected do not count.
package aggregate

import "github.com/dmitrijs2005/fleetcheck/internal/models"

type SectionSummary struct {
	SectionID  string
	Title      string
	Emoji      string
	TotalItems int
	NotOkCount int
}

// Counts tallies a record's items by status.
type Counts struct {
	OK      int
	Regular int
	Bad     int
	Unset   int
}

func (c Counts) Total() int { return c.OK + c.Regular + c.Bad + c.Unset }

// NotOk is the number of non-conforming items.
func (c Counts) NotOk() int { return c.Regular + c.Bad }

func IsNonConforming(s models.Status) bool {
	return s == models.StatusRegular || s == models.StatusBad
}

func SummarizeSection(s models.Section) SectionSummary {
	sum := SectionSummary{SectionID: s.ID, Title: s.Title, Emoji: s.Emoji, TotalItems: len(s.Items)}
	for _, it := range s.Items {
		if IsNonConforming(it.Status) {
			sum.NotOkCount++
		}
	}
	return sum
}

// Summaries returns one summary per section, in record order.
func Summaries(c models.Checklist) []SectionSummary {
	out := make([]SectionSummary, len(c.Sections))
	for i, s := range c.Sections {
		out[i] = SummarizeSection(s)
	}
	return out
}

func RecordNotOkCount(c models.Checklist) int {
	n := 0
	for _, s := range c.Sections {
		n += SummarizeSection(s).NotOkCount
	}
	return n
}

func Tally(c models.Checklist) Counts {
	var counts Counts
	for _, s := range c.Sections {
		for _, it := range s.Items {
			switch it.Status {
			case models.StatusOK:
				counts.OK++
			case models.StatusRegular:
				counts.Regular++
			case models.StatusBad:
				counts.Bad++
			default:
				counts.Unset++
			}
		}
	}
	return counts
}
