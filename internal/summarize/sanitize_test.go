package summarize

import (
	"strings"
	"testing"
)

func TestSanitizeRemovesInlineParenthesizedDisclaimer(t *testing.T) {
	in := "The Senate passed the bill on Tuesday.\n(Note: This summary was generated automatically and may contain errors.) The vote was 52-48."
	out := Sanitize(in)
	if out == "" {
		t.Fatalf("got empty output")
	}
	if strings.Contains(strings.ToLower(out), "note:") {
		t.Errorf("output still contains 'Note:' disclaimer: %q", out)
	}
	if !strings.Contains(out, "The vote was 52-48") {
		t.Errorf("expected content preserved after disclaimer removal, got: %q", out)
	}
}

func TestSanitizeRemovesFullLineNote(t *testing.T) {
	in := "Note: This summary is AI generated.\nThe Senate passed the bill on Tuesday."
	out := Sanitize(in)
	if strings.Contains(strings.ToLower(out), "note:") {
		t.Errorf("disclaimer line was not removed: %q", out)
	}
	if !strings.Contains(out, "Senate passed the bill") {
		t.Errorf("expected content line to remain: %q", out)
	}
}

func TestSanitizeRemovesBracketedDisclaimer(t *testing.T) {
	in := "[Note: machine generated] The central bank held rates steady."
	out := Sanitize(in)
	if strings.Contains(strings.ToLower(out), "note") {
		t.Errorf("bracketed disclaimer was not removed: %q", out)
	}
	if !strings.Contains(out, "central bank held rates steady") {
		t.Errorf("expected text preserved: %q", out)
	}
}

func TestSanitizeStripsSummaryPrefix(t *testing.T) {
	out := Sanitize("Summary: The central bank held rates steady.")
	if strings.HasPrefix(strings.ToLower(out), "summary") {
		t.Errorf("summary prefix not stripped: %q", out)
	}
}

func TestExtractiveSummaryPicksSentences(t *testing.T) {
	content := "The Federal Reserve raised its benchmark interest rate by a quarter point on Wednesday. " +
		"Officials signaled that further increases remain possible later this year. " +
		"Markets had widely anticipated the move."
	out := ExtractiveSummary(content)
	if !strings.Contains(out, "Federal Reserve raised") {
		t.Errorf("first sentence missing: %q", out)
	}
	if strings.Contains(out, "widely anticipated") {
		t.Errorf("summary should stop after two sentences: %q", out)
	}
}

func TestExtractiveSummaryEmptyContent(t *testing.T) {
	if out := ExtractiveSummary("   "); out != "" {
		t.Errorf("empty content should yield empty summary, got %q", out)
	}
}

func TestTrimInputCollapsesWhitespace(t *testing.T) {
	out := trimInput("a\r\nb   c\n\nd")
	if out != "a b c d" {
		t.Errorf("trimInput = %q", out)
	}
}

func TestTrimInputCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 3000)
	out := trimInput(long)
	if len([]rune(out)) > maxInputSize {
		t.Errorf("input not capped: %d runes", len([]rune(out)))
	}
}
