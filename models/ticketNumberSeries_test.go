package models

import "testing"

func TestFormatTicketNumber(t *testing.T) {
	cases := []struct {
		year     int
		sequence int
		expected string
	}{
		{2024, 1, "TKT-2024-001"},
		{2024, 2, "TKT-2024-002"},
		{2025, 12, "TKT-2025-012"},
		{2025, 999, "TKT-2025-999"},
		{2025, 1000, "TKT-2025-1000"},
	}
	for _, tc := range cases {
		if got := FormatTicketNumber(tc.year, tc.sequence); got != tc.expected {
			t.Fatalf("FormatTicketNumber(%d, %d) expected %s, got %s", tc.year, tc.sequence, tc.expected, got)
		}
	}
}
