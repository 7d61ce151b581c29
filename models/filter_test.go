package models

import (
	"strings"
	"testing"
	"time"
)

func TestTicketFilterEmptyProducesNoConditions(t *testing.T) {
	conds := TicketFilter{}.Conditions()
	if len(conds) != 0 {
		t.Fatalf("expected no conditions, got %d", len(conds))
	}
}

func TestTicketFilterSearchExpandsToThreeColumnOr(t *testing.T) {
	conds := TicketFilter{Search: "Acme"}.Conditions()
	if len(conds) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(conds))
	}
	q := conds[0].Query
	for _, col := range []string{"ticket_number", "site_name", "contact_person"} {
		if !strings.Contains(q, col+" LIKE ?") {
			t.Fatalf("search condition missing %s match: %q", col, q)
		}
	}
	if strings.Count(q, " OR ") != 2 {
		t.Fatalf("expected two ORs in %q", q)
	}
	if len(conds[0].Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(conds[0].Args))
	}
	for _, arg := range conds[0].Args {
		if arg != "%Acme%" {
			t.Fatalf("expected substring pattern %%Acme%%, got %v", arg)
		}
	}
}

func TestTicketFilterCombinesAllConstraints(t *testing.T) {
	f := TicketFilter{Search: "pump", Status: TicketStatusOpen, ProjectType: "HVAC"}
	conds := f.Conditions()
	if len(conds) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(conds))
	}
	if conds[1].Query != "status = ?" || conds[1].Args[0] != TicketStatusOpen {
		t.Fatalf("unexpected status condition: %+v", conds[1])
	}
	if conds[2].Query != "project_type = ?" || conds[2].Args[0] != "HVAC" {
		t.Fatalf("unexpected project type condition: %+v", conds[2])
	}
}

func TestReportFilterSearchMatchesName(t *testing.T) {
	conds := ReportFilter{Search: "Asha"}.Conditions()
	if len(conds) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(conds))
	}
	if conds[0].Query != "name LIKE ?" || conds[0].Args[0] != "%Asha%" {
		t.Fatalf("unexpected search condition: %+v", conds[0])
	}
}

func TestReportFilterDateBoundsAreInclusive(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	conds := ReportFilter{FromDate: &from, ToDate: &to}.Conditions()
	if len(conds) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(conds))
	}
	if conds[0].Query != "date >= ?" || !conds[0].Args[0].(time.Time).Equal(from) {
		t.Fatalf("unexpected from condition: %+v", conds[0])
	}
	// The upper bound covers the whole to-day: strictly before the next day.
	if conds[1].Query != "date < ?" || !conds[1].Args[0].(time.Time).Equal(to.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected to condition: %+v", conds[1])
	}
}

func TestReportFilterOpenEndedBounds(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	conds := ReportFilter{FromDate: &from}.Conditions()
	if len(conds) != 1 || conds[0].Query != "date >= ?" {
		t.Fatalf("expected only the from bound, got %+v", conds)
	}

	conds = ReportFilter{}.Conditions()
	if len(conds) != 0 {
		t.Fatalf("expected no conditions, got %d", len(conds))
	}
}
