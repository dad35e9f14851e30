package compare

import (
	"strings"
	"testing"
)

func TestSplitUnits_SentenceBoundaries(t *testing.T) {
	text := "The company reported strong revenue growth. Margins expanded across every segment! Guidance was raised for the full year."

	units := SplitUnits(text)

	if len(units) != 3 {
		t.Fatalf("Expected 3 units, got %d: %v", len(units), units)
	}
	if !strings.HasPrefix(units[1], "Margins expanded") {
		t.Errorf("Unexpected second unit %q", units[1])
	}
}

func TestSplitUnits_DecimalsNotSplit(t *testing.T) {
	text := "Earnings per share came in at $2.05 for the quarter, ahead of consensus."

	units := SplitUnits(text)

	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d: %v", len(units), units)
	}
	if !strings.Contains(units[0], "$2.05") {
		t.Errorf("Expected decimal preserved, got %q", units[0])
	}
}

func TestSplitUnits_LengthGate(t *testing.T) {
	long := strings.Repeat("filler words here ", 40) // over 600 chars
	text := "Ok. " + long + ". The company reported revenue growth above expectations."

	units := SplitUnits(text)

	for _, u := range units {
		if len(u) < minUnitLen || len(u) > maxUnitLen {
			t.Errorf("Unit outside length gate (%d chars): %q", len(u), u)
		}
	}
	if len(units) != 1 {
		t.Errorf("Expected only the well-sized unit to survive, got %d: %v", len(units), units)
	}
}

func TestBestOverlap(t *testing.T) {
	sourceUnits := []string{
		"The company reported record revenue for the fourth quarter",
		"Board membership remained unchanged through the period",
	}

	high := bestOverlap("The company reported record revenue for the quarter", sourceUnits)
	if high < 0.5 {
		t.Errorf("Expected high overlap, got %f", high)
	}

	low := bestOverlap("Astronauts landed on the lunar surface yesterday", sourceUnits)
	if low >= 0.5 {
		t.Errorf("Expected low overlap, got %f", low)
	}
}
