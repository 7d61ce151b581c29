package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestBuildTicketWorkbookRejectsEmptyList(t *testing.T) {
	if _, err := BuildTicketWorkbook(nil); !errors.Is(err, ErrNoExportData) {
		t.Fatalf("expected ErrNoExportData, got %v", err)
	}
	if _, err := BuildReportWorkbook([]*Report{}); !errors.Is(err, ErrNoExportData) {
		t.Fatalf("expected ErrNoExportData, got %v", err)
	}
}

func TestBuildTicketWorkbookLayout(t *testing.T) {
	date := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	tickets := []*Ticket{
		{
			TicketNumber:   "TKT-2024-001",
			Date:           &date,
			ProjectType:    "HVAC",
			SiteName:       "Riverside Mall",
			ContactPerson:  "Asha",
			Status:         TicketStatusOpen,
			AmountReceived: decimal.NewFromInt(1500),
		},
		{
			TicketNumber: "TKT-2024-002",
			SiteName:     "Harbor Tower",
			Status:       TicketStatusClosed,
		},
	}

	f, err := BuildTicketWorkbook(tickets)
	if err != nil {
		t.Fatalf("BuildTicketWorkbook: %v", err)
	}

	for i, header := range ticketExportHeaders {
		cell := coordinates(t, i+1, 1)
		got, err := f.GetCellValue(exportSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != header {
			t.Fatalf("header column %d expected %q, got %q", i+1, header, got)
		}
	}

	checks := map[string]string{
		"A2": "TKT-2024-001",
		"B2": "07/05/2024",
		"C2": "HVAC",
		"E2": "Riverside Mall",
		"F2": "Asha",
		"M2": TicketStatusOpen,
		"P2": "1500",
		"A3": "TKT-2024-002",
		"B3": "", // missing date renders empty
		"M3": TicketStatusClosed,
	}
	for cell, expected := range checks {
		got, err := f.GetCellValue(exportSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != expected {
			t.Fatalf("cell %s expected %q, got %q", cell, expected, got)
		}
	}
}

func TestBuildReportWorkbookLayout(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	reports := []*Report{
		{
			Name:           "Asha",
			Date:           &date,
			KmIn:           100,
			KmOut:          175,
			Site1:          "Riverside Mall",
			ServiceReport1: "yes",
			TransportMode:  "Bike",
			TotalKm:        75,
			Amount:         decimal.NewFromInt(350),
		},
	}

	f, err := BuildReportWorkbook(reports)
	if err != nil {
		t.Fatalf("BuildReportWorkbook: %v", err)
	}

	for i, header := range reportExportHeaders {
		cell := coordinates(t, i+1, 1)
		got, err := f.GetCellValue(exportSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != header {
			t.Fatalf("header column %d expected %q, got %q", i+1, header, got)
		}
	}

	checks := map[string]string{
		"A2": "Asha",
		"B2": "01/06/2024",
		"C2": "100",
		"D2": "175",
		"E2": "Riverside Mall",
		"F2": "yes",
		"L2": "Bike",
		"M2": "75",
		"N2": "350",
		"O2": "",
	}
	for cell, expected := range checks {
		got, err := f.GetCellValue(exportSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != expected {
			t.Fatalf("cell %s expected %q, got %q", cell, expected, got)
		}
	}
}

func TestBuildWorkbookColumnWidths(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	tickets := []*Ticket{{
		TicketNumber: "TKT-2024-001",
		SiteName:     "HQ",
		Address:      string(long),
		Status:       TicketStatusOpen,
	}}

	f, err := BuildTicketWorkbook(tickets)
	if err != nil {
		t.Fatalf("BuildTicketWorkbook: %v", err)
	}

	// Address (column H) holds an 80-char value: width is capped.
	width, err := f.GetColWidth(exportSheet, "H")
	if err != nil {
		t.Fatalf("GetColWidth(H): %v", err)
	}
	if width != exportMaxColWidth {
		t.Fatalf("expected capped width %d, got %v", exportMaxColWidth, width)
	}

	// Ticket No (column A): longest value plus padding.
	width, err = f.GetColWidth(exportSheet, "A")
	if err != nil {
		t.Fatalf("GetColWidth(A): %v", err)
	}
	expected := float64(len("TKT-2024-001") + exportColumnPadding)
	if width != expected {
		t.Fatalf("expected width %v, got %v", expected, width)
	}
}

func coordinates(t *testing.T, col, row int) string {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("cell name (%d,%d): %v", col, row, err)
	}
	return cell
}
