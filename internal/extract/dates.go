package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Layouts banking documents actually use, in trial order. First parse wins.
var dateLayouts = []string{
	"01/02/2006",      // 12/31/2023
	"01-02-2006",      // 12-31-2023
	"2006-01-02",      // 2023-12-31
	"January 2, 2006", // December 31, 2023
	"Jan 2, 2006",     // Dec 31, 2023
	"2 January 2006",  // 31 December 2023
	"2 Jan 2006",      // 31 Dec 2023
	"01/02/06",        // 12/31/23
	"01-02-06",        // 12-31-23
}

// Period-specific vocabulary immediately followed by a slash date. When at
// least two of these match, the generic scan is skipped entirely.
var periodDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:interest\s+period\s+start\s+date|start\s+date)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)(?:interest\s+period\s+end\s+date|end\s+date)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)(?:from|start)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)(?:to|through|end)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
}

var genericDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`),
	regexp.MustCompile(`\b([A-Za-z]+ \d{1,2}, \d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2} [A-Za-z]+ \d{4})\b`),
}

// contextRadius is how far around a generic date match to look for metadata
// vocabulary that disqualifies it as a period date.
const contextRadius = 50

// ParseDate parses a single date string by trying each known layout in
// order. Returns nil when no layout matches.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ExtractPeriodDates locates the interest period dates in notice text and
// returns up to two, sorted chronologically.
//
// Dates anchored to period vocabulary are preferred. The fallback scans
// every date-shaped substring but drops any whose surrounding context
// mentions "notice" or "reference" — those are document metadata dates
// (notice date, reference date), not period boundaries.
func ExtractPeriodDates(text string) []time.Time {
	var periodDates []time.Time
	for _, re := range periodDatePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if d := ParseDate(m[1]); d != nil && !containsDate(periodDates, *d) {
				periodDates = append(periodDates, *d)
			}
		}
	}
	if len(periodDates) >= 2 {
		sortDates(periodDates)
		return periodDates[:2]
	}

	var all []time.Time
	for _, re := range genericDatePatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			// m[2]:m[3] is the capture group.
			d := ParseDate(text[m[2]:m[3]])
			if d == nil || containsDate(all, *d) {
				continue
			}
			ctxStart := max(0, m[0]-contextRadius)
			ctxEnd := min(len(text), m[1]+contextRadius)
			context := strings.ToLower(text[ctxStart:ctxEnd])
			if strings.Contains(context, "notice") || strings.Contains(context, "reference") {
				continue
			}
			all = append(all, *d)
		}
	}
	sortDates(all)
	if len(all) > 2 {
		all = all[:2]
	}
	return all
}

func sortDates(ds []time.Time) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
}

func containsDate(ds []time.Time, d time.Time) bool {
	for _, x := range ds {
		if x.Equal(d) {
			return true
		}
	}
	return false
}
