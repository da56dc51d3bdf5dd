package booking

import (
	"encoding/json"
	"strings"
	"testing"
)

const wellFormed = `1. Journey Summary
Mumbai Central to New Delhi, 2 passengers in 3A.

2. Best Direct Train Options
- Rajdhani Express
- August Kranti

3. Smart Booking Hacks (Station Pair Tricks)
Board from Borivali.

4. Quota Recommendation
GN quota first.

5. Confirmation Probability (Reasoned)
High for RLWL under 20.

6. 60-Day Booking Calendar Insight
Book on opening day.

7. Backup Strategies (Tatkal / Split / Alternate Route)
Tatkal at 10:00 the day before.`

func TestExtract_WellFormed(t *testing.T) {
	got, degraded := ExtractSections(wellFormed)
	if degraded {
		t.Fatal("expected structured extraction")
	}
	want := AnalysisResult{
		JourneySummary:          "Mumbai Central to New Delhi, 2 passengers in 3A.",
		BestDirectTrains:        "- Rajdhani Express\n- August Kranti",
		SmartBookingHacks:       "Board from Borivali.",
		QuotaRecommendation:     "GN quota first.",
		ConfirmationProbability: "High for RLWL under 20.",
		BookingCalendar:         "Book on opening day.",
		BackupStrategies:        "Tatkal at 10:00 the day before.",
	}
	if got != want {
		t.Fatalf("unexpected result:\n got  %+v\n want %+v", got, want)
	}
}

func TestExtract_MarkdownHeadings(t *testing.T) {
	text := `Here is my analysis.

## Journey Summary
summary body

### 2. Best Direct Trains
trains body

**3. Smart Booking Hacks (Station Pair Tricks):**
hacks body

# Quota Recommendations
quota body

## 5) Confirmation Probability
probability body

## Booking Calendar
calendar body

## Backup Strategies: split journeys`

	got := Extract(text)
	want := AnalysisResult{
		JourneySummary:          "summary body",
		BestDirectTrains:        "trains body",
		SmartBookingHacks:       "hacks body",
		QuotaRecommendation:     "quota body",
		ConfirmationProbability: "probability body",
		BookingCalendar:         "calendar body",
		BackupStrategies:        "split journeys",
	}
	if got != want {
		t.Fatalf("unexpected result:\n got  %+v\n want %+v", got, want)
	}
}

func TestExtract_CaseInsensitiveInlineBodies(t *testing.T) {
	got := Extract("1. JOURNEY SUMMARY: short trip 2. best direct train options: none listed")
	if got.JourneySummary != "short trip" {
		t.Errorf("journey summary = %q", got.JourneySummary)
	}
	if got.BestDirectTrains != "none listed" {
		t.Errorf("best direct trains = %q", got.BestDirectTrains)
	}
}

func TestExtract_BoundaryExcludesNextHeading(t *testing.T) {
	got := Extract(wellFormed)
	for _, s := range got.Sections() {
		if s.Body == "" {
			t.Fatalf("section %s unexpectedly empty", s.Key)
		}
		for i := 1; i <= 7; i++ {
			marker := string(rune('0'+i)) + ". "
			if strings.Contains(s.Body, marker) {
				t.Errorf("section %s leaks heading marker %q: %q", s.Key, marker, s.Body)
			}
		}
	}
}

func TestExtract_EmphasisedHeadingsDoNotLeak(t *testing.T) {
	text := "**1. Journey Summary**\nalpha\n\n**2. Best Direct Train Options**\nbeta"
	got := Extract(text)
	if got.JourneySummary != "alpha" || got.BestDirectTrains != "beta" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestExtract_MissingMiddleSection(t *testing.T) {
	text := `1. Journey Summary
a
2. Best Direct Train Options
b
4. Quota Recommendation
d
5. Confirmation Probability
e
6. 60-Day Booking Calendar
f
7. Backup Strategies
g`
	got := Extract(text)
	if got.SmartBookingHacks != "" {
		t.Errorf("expected empty hacks, got %q", got.SmartBookingHacks)
	}
	if got.BestDirectTrains != "b" {
		t.Errorf("best direct trains should stop at the next heading found, got %q", got.BestDirectTrains)
	}
	if got.QuotaRecommendation != "d" || got.BackupStrategies != "g" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestExtract_TruncatedOutput(t *testing.T) {
	got := Extract("1. Journey Summary\nfirst\n2. Best Direct Train Options\nsecond, cut off mid")
	if got.BestDirectTrains != "second, cut off mid" {
		t.Errorf("last section should run to end of text, got %q", got.BestDirectTrains)
	}
	if got.SmartBookingHacks != "" || got.BackupStrategies != "" {
		t.Errorf("trailing sections should stay empty, got %+v", got)
	}
}

func TestExtract_FallbackWithoutStructure(t *testing.T) {
	text := "  I need to know whether you can travel a day earlier.\n"
	got, degraded := ExtractSections(text)
	if !degraded {
		t.Fatal("expected degraded result")
	}
	want := AnalysisResult{JourneySummary: "I need to know whether you can travel a day earlier."}
	if got != want {
		t.Fatalf("unexpected fallback %+v", got)
	}
}

func TestExtract_FallbackWhenFirstSectionMissing(t *testing.T) {
	text := "2. Best Direct Train Options\nRajdhani\n7. Backup Strategies\nTatkal"
	got := Extract(text)
	want := AnalysisResult{JourneySummary: strings.TrimSpace(text)}
	if got != want {
		t.Fatalf("expected whole text in journey summary only, got %+v", got)
	}
}

func TestExtract_EmptyHeadingBodyIsNotFallback(t *testing.T) {
	got, degraded := ExtractSections("1. Journey Summary\n2. Best Direct Train Options\ntrains")
	if degraded {
		t.Fatal("a present but empty first section is still structured output")
	}
	if got.JourneySummary != "" || got.BestDirectTrains != "trains" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestExtract_Totality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"no headings at all",
		"1.",
		"#",
		"1. Journey Summary",
		"7. Backup Strategies only",
		"\x00\xff broken utf8",
		strings.Repeat("## ", 1000),
	}
	for _, in := range inputs {
		got := Extract(in)
		raw, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var keys map[string]string
		if err := json.Unmarshal(raw, &keys); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(keys) != 7 {
			t.Fatalf("expected 7 keys for %q, got %d", in, len(keys))
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	for _, in := range []string{wellFormed, "plain text", ""} {
		if Extract(in) != Extract(in) {
			t.Fatalf("extraction not deterministic for %q", in)
		}
	}
}

func TestAnalysisResult_JSONKeyOrder(t *testing.T) {
	raw, err := json.Marshal(AnalysisResult{})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"journeySummary":"","bestDirectTrains":"","smartBookingHacks":"","quotaRecommendation":"","confirmationProbability":"","bookingCalendar":"","backupStrategies":""}`
	if string(raw) != want {
		t.Fatalf("unexpected json %s", raw)
	}
}

func TestAnalysisResult_SectionsOrder(t *testing.T) {
	secs := Extract(wellFormed).Sections()
	wantKeys := []string{"journeySummary", "bestDirectTrains", "smartBookingHacks", "quotaRecommendation",
		"confirmationProbability", "bookingCalendar", "backupStrategies"}
	if len(secs) != len(wantKeys) {
		t.Fatalf("expected %d sections, got %d", len(wantKeys), len(secs))
	}
	for i, k := range wantKeys {
		if secs[i].Key != k {
			t.Errorf("section %d: got %s want %s", i, secs[i].Key, k)
		}
	}
}
