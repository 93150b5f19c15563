package money

import "testing"

func TestCentsFromString(t *testing.T) {
	tests := []struct {
		raw   string
		cents int64
		fails bool
	}{
		{raw: "300$", cents: 30000},
		{raw: "$299.99", cents: 29999},
		{raw: "60$ CAD", cents: 6000},
		{raw: "89,99", cents: 8999},
		{raw: " 15 ", cents: 1500},
		{raw: "0", cents: 0},
		{raw: "gratuit", fails: true},
		{raw: "", fails: true},
		{raw: "-5$", fails: true},
	}

	for _, tt := range tests {
		got, err := CentsFromString(tt.raw)
		if tt.fails {
			if err == nil {
				t.Fatalf("CentsFromString(%q) expected error, got %d", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("CentsFromString(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.cents {
			t.Fatalf("CentsFromString(%q) = %d, want %d", tt.raw, got, tt.cents)
		}
	}
}

func TestCentsFromFloat(t *testing.T) {
	got, err := CentsFromFloat(299.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 29999 {
		t.Fatalf("CentsFromFloat(299.99) = %d, want 29999", got)
	}

	if _, err := CentsFromFloat(-1); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestFormatCAD(t *testing.T) {
	if got := FormatCAD(30000); got != "300.00$ CAD" {
		t.Fatalf("FormatCAD(30000) = %q", got)
	}
	if got := FormatCAD(0); got != "0.00$ CAD" {
		t.Fatalf("FormatCAD(0) = %q", got)
	}
}
