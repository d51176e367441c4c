package model

import (
	"encoding/json"
	"testing"
)

func TestDisplayTitle_Shapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"Экономика"`, "Экономика"},
		{"padded string", `"  Экономика  "`, "Экономика"},
		{"list", `["Первый", "Второй"]`, "Первый"},
		{"list with blanks", `["", "  ", "Настоящий"]`, "Настоящий"},
		{"empty list", `[]`, ""},
		{"titled object", `{"title": "Вложенный"}`, "Вложенный"},
		{"object without title", `{"name": "нет"}`, ""},
		{"number degrades", `42`, ""},
		{"null degrades", `null`, ""},
	}

	for _, tc := range cases {
		var title DisplayTitle
		if err := json.Unmarshal([]byte(tc.raw), &title); err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if title.String() != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, title.String())
		}
	}
}

func TestDisplayTitle_RoundTrip(t *testing.T) {
	title := NewDisplayTitle("Экономика")
	data, err := json.Marshal(title)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded DisplayTitle
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.String() != "Экономика" {
		t.Errorf("Round trip lost the title: %q", decoded.String())
	}
}

func TestNewRunReport_Aggregates(t *testing.T) {
	results := []VerificationResult{
		{Verification: VerificationOutcome{Found: true, Confidence: 90}},
		{Verification: VerificationOutcome{Found: true, Confidence: 60}},
		{Verification: NotFound("no source")},
	}

	report := NewRunReport(results)

	if report.TotalPairs != 3 || report.Verified != 2 || report.NotVerified != 1 {
		t.Errorf("Unexpected counts: %+v", report)
	}
	if report.VerificationRate < 0.66 || report.VerificationRate > 0.67 {
		t.Errorf("Expected rate ~0.67, got %f", report.VerificationRate)
	}
	if report.AverageConfidence != 75 {
		t.Errorf("Expected average confidence 75, got %f", report.AverageConfidence)
	}
}

func TestNewRunReport_Empty(t *testing.T) {
	report := NewRunReport(nil)
	if report.TotalPairs != 0 || report.VerificationRate != 0 || report.AverageConfidence != 0 {
		t.Errorf("Unexpected aggregates for empty input: %+v", report)
	}
}
