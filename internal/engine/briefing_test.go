package engine

import (
	"strings"
	"testing"
)

func TestCompose_WellRecovered(t *testing.T) {
	got := Compose(StateWellRecovered, []ReasonCode{ReasonGoodRecovery}, true)
	want := "🟢 OPTIMAL READINESS\n" +
		"Your system is ready for standard or high-intensity activity.\n" +
		"\n" +
		"Analysis:\n" +
		"- Consistent sleep and low stress are maintaining your physiological capacity.\n" +
		"\n" +
		"Directives:\n" +
		"✅ Workout Allowed: Prioritize moderate intensity."
	if got != want {
		t.Errorf("briefing mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompose_BulletsFollowCodeOrder(t *testing.T) {
	codes := []ReasonCode{ReasonHighBP, ReasonHighStress, ReasonHighHR}
	got := Compose(StateUnderRecovered, codes, false)
	lines := strings.Split(got, "\n")

	if lines[0] != "🟡 MODERATE STRAIN WARNING" {
		t.Errorf("title: got %q", lines[0])
	}
	if lines[3] != "Analysis:" {
		t.Fatalf("expected Analysis header at line 3, got %q", lines[3])
	}
	for i, code := range codes {
		want := "- " + reasonPhrases[code]
		if lines[4+i] != want {
			t.Errorf("bullet %d: got %q, want %q", i, lines[4+i], want)
		}
	}
	if lines[len(lines)-2] != "Directives:" {
		t.Errorf("expected Directives header, got %q", lines[len(lines)-2])
	}
	if lines[len(lines)-1] != workoutBlockedAdvice {
		t.Errorf("directive: got %q", lines[len(lines)-1])
	}
}

func TestCompose_Fallbacks(t *testing.T) {
	got := Compose(HealthState("Unknown"), []ReasonCode{"SOMETHING_NEW"}, false)

	if !strings.HasPrefix(got, fallbackTitle+"\n"+fallbackSummary+"\n") {
		t.Errorf("expected fallback title and summary, got:\n%s", got)
	}
	if !strings.Contains(got, "- "+fallbackReason) {
		t.Errorf("expected fallback reason sentence, got:\n%s", got)
	}
}

func TestCompose_StableBaselinePhrase(t *testing.T) {
	got := Compose(StateWellRecovered, []ReasonCode{ReasonStableBaseline}, true)
	if !strings.Contains(got, "- Your current metrics align with your standard activity-to-rest ratio.") {
		t.Errorf("missing baseline phrase:\n%s", got)
	}
}

func TestCompose_NoTruncation(t *testing.T) {
	codes := make([]ReasonCode, 0, 12)
	for i := 0; i < 2; i++ {
		codes = append(codes, ReasonLowSleep, ReasonHighStress, ReasonHighHR, ReasonHighBP, ReasonGoodRecovery, ReasonStableBaseline)
	}
	got := Compose(StateUnderRecovered, codes, false)
	if n := strings.Count(got, "\n- "); n != len(codes) {
		t.Errorf("expected %d bullets, got %d", len(codes), n)
	}
}
