// README: Section extractor turning free-form model output into the seven-part AnalysisResult.
package booking

import (
	"regexp"
	"strconv"
	"strings"
)

type section struct {
	key    string
	title  string
	field  func(*AnalysisResult) *string
	header *regexp.Regexp
}

// sectionTable lists the sections in output order. Title variants go longest first
// so the alternation consumes as much of the heading as possible.
var sectionTable = buildSections([]struct {
	key      string
	title    string
	variants []string
	field    func(*AnalysisResult) *string
}{
	{"journeySummary", "Journey Summary",
		[]string{"Journey Summary"},
		func(r *AnalysisResult) *string { return &r.JourneySummary }},
	{"bestDirectTrains", "Best Direct Train Options",
		[]string{"Best Direct Train Options", "Best Direct Trains"},
		func(r *AnalysisResult) *string { return &r.BestDirectTrains }},
	{"smartBookingHacks", "Smart Booking Hacks (Station Pair Tricks)",
		[]string{"Smart Booking Hacks"},
		func(r *AnalysisResult) *string { return &r.SmartBookingHacks }},
	{"quotaRecommendation", "Quota Recommendation",
		[]string{"Quota Recommendations", "Quota Recommendation"},
		func(r *AnalysisResult) *string { return &r.QuotaRecommendation }},
	{"confirmationProbability", "Confirmation Probability (Reasoned)",
		[]string{"Confirmation Probability"},
		func(r *AnalysisResult) *string { return &r.ConfirmationProbability }},
	{"bookingCalendar", "60-Day Booking Calendar Insight",
		[]string{"60-Day Booking Calendar Insights", "60-Day Booking Calendar Insight", "60-Day Booking Calendar",
			"60 Day Booking Calendar", "Booking Calendar Insights", "Booking Calendar Insight", "Booking Calendar"},
		func(r *AnalysisResult) *string { return &r.BookingCalendar }},
	{"backupStrategies", "Backup Strategies (Tatkal / Split / Alternate Route)",
		[]string{"Backup Strategies", "Backup Strategy"},
		func(r *AnalysisResult) *string { return &r.BackupStrategies }},
})

func buildSections(defs []struct {
	key      string
	title    string
	variants []string
	field    func(*AnalysisResult) *string
}) []section {
	out := make([]section, len(defs))
	for i, d := range defs {
		out[i] = section{
			key:    d.key,
			title:  d.title,
			field:  d.field,
			header: headerPattern(i+1, d.variants),
		}
	}
	return out
}

// headerPattern matches "N." / "N)" or a markdown "#" marker, optionally wrapped in
// "#" runs and "**" emphasis, then one of the title variants, an optional
// "(...)" subtitle and an optional colon.
func headerPattern(n int, variants []string) *regexp.Regexp {
	alts := make([]string, len(variants))
	for i, v := range variants {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(v), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)(?:#{1,6}[ \t]*)?(?:\*\*)?[ \t]*` +
		`(?:` + strconv.Itoa(n) + `[.)]|#{1,6})` +
		`\s*(?:\*\*)?\s*` +
		`(?:` + strings.Join(alts, "|") + `)` +
		`(?:[ \t]*\([^)\n]*\))?[ \t]*(?:\*\*)?[ \t]*:?(?:\*\*)?`)
}

// NamedSection is one section of a result with its display title.
type NamedSection struct {
	Key   string
	Title string
	Body  string
}

// Sections returns the seven sections in display order.
func (r AnalysisResult) Sections() []NamedSection {
	out := make([]NamedSection, len(sectionTable))
	for i, s := range sectionTable {
		out[i] = NamedSection{Key: s.key, Title: s.title, Body: *s.field(&r)}
	}
	return out
}

// Extract splits text into the seven sections. It never fails.
func Extract(text string) AnalysisResult {
	res, _ := ExtractSections(text)
	return res
}

// ExtractSections is Extract that also reports whether the fallback was used,
// i.e. the Journey Summary heading was not found.
//
// Headings are located in order, each search starting after the previous
// heading found. A body runs to the next heading found or the end of text.
// Missing sections stay empty.
func ExtractSections(text string) (res AnalysisResult, degraded bool) {
	type hit struct {
		section    int
		start, end int
	}

	var hits []hit
	offset := 0
	for i, s := range sectionTable {
		loc := s.header.FindStringIndex(text[offset:])
		if loc == nil {
			continue
		}
		hits = append(hits, hit{section: i, start: offset + loc[0], end: offset + loc[1]})
		offset += loc[1]
	}

	if len(hits) == 0 || hits[0].section != 0 {
		return AnalysisResult{JourneySummary: strings.TrimSpace(text)}, true
	}

	for k, h := range hits {
		end := len(text)
		if k+1 < len(hits) {
			end = hits[k+1].start
		}
		*sectionTable[h.section].field(&res) = strings.TrimSpace(text[h.end:end])
	}
	return res, false
}
