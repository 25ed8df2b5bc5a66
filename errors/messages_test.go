package errors

import "testing"

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "de"},
		{header: "en-US,en;q=0.9", want: "en"},
		{header: "fr-FR, en;q=0.5", want: "en"},
		{header: "DE-at", want: "de"},
		{header: "fr, es", want: "de"},
		{header: "en;q=0.1, de;q=0.9", want: "de"},
		{header: "de;q=0.2, en;q=0.8", want: "en"},
		{header: "fr, en;q=0", want: "de"},
		{header: "de-CH", want: "de"},
		{header: "en;q=abc", want: "de"},
	}

	for _, tt := range tests {
		if got := MatchLanguage(tt.header); got != tt.want {
			t.Errorf("MatchLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestLocalize(t *testing.T) {
	if got := Localize(ErrorCode_MEETING_COMPLETED, "en", "fallback"); got != "The meeting has already been completed." {
		t.Fatalf("unexpected english message %q", got)
	}
	if got := Localize(ErrorCode_MEETING_COMPLETED, "", "fallback"); got != "Die Versammlung ist bereits abgeschlossen." {
		t.Fatalf("unexpected german message %q", got)
	}
}

func TestLanguagesCoverSameCodes(t *testing.T) {
	for code := range catalog[DefaultLanguage] {
		if _, ok := catalog["en"][code]; !ok {
			t.Errorf("en: missing message for %s", code)
		}
	}
	if len(catalog["en"]) != len(catalog[DefaultLanguage]) {
		t.Errorf("en has %d messages, de has %d", len(catalog["en"]), len(catalog[DefaultLanguage]))
	}
}

func TestWithDetailCopies(t *testing.T) {
	base := ErrInvalidArgument("bad")
	withField := base.WithDetail("field", "title")

	if len(base.Details) != 0 {
		t.Fatalf("base error must not change, got %v", base.Details)
	}
	if withField.Details["field"] != "title" {
		t.Fatalf("expected detail, got %v", withField.Details)
	}
	if skipped := base.WithDetail("field", ""); skipped.Details != nil {
		t.Fatalf("empty detail must be skipped, got %v", skipped.Details)
	}
}
