package risk

import (
	"testing"

	"RiskPulse/internal/domain/models"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		typ  string
		want models.Severity
	}{
		{"Multi-vehicle collision", models.SeverityHigh},
		{"ACCIDENT on ramp", models.SeverityHigh},
		{"vehicle crash", models.SeverityHigh},
		{"Travaux routiers", models.SeverityMedium},
		{"Road construction", models.SeverityMedium},
		{"scheduled maintenance", models.SeverityMedium},
		{"heavy traffic", models.SeverityLow},
		{"Embouteillage majeur", models.SeverityLow},
		{"unexpected gremlins", models.SeverityMedium}, // default
		{"", models.SeverityMedium},
	}
	for _, c := range cases {
		if got := ClassifySeverity(c.typ); got != c.want {
			t.Fatalf("%q: want %v, got %v", c.typ, c.want, got)
		}
	}
}

func TestClassifySeverityPrecedence(t *testing.T) {
	// High keywords win even when lower-tier keywords are present too.
	if got := ClassifySeverity("traffic accident near construction"); got != models.SeverityHigh {
		t.Fatalf("precedence: want High, got %v", got)
	}
	if got := ClassifySeverity("construction causing congestion"); got != models.SeverityMedium {
		t.Fatalf("precedence: want Medium, got %v", got)
	}
}
