package models

import (
	"errors"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNoExportData is returned when an export is requested for an empty
// record list; an empty workbook is never produced.
var ErrNoExportData = errors.New("no records to export")

const (
	exportSheet      = "Sheet1"
	exportDateLayout = "02/01/2006"

	// Column widths are a presentation hint only: longest rendered value
	// plus padding, capped so one long address cannot blow up the sheet.
	exportColumnPadding = 2
	exportMaxColWidth   = 50
)

var ticketExportHeaders = []string{
	"Ticket No", "Date", "Project Type", "Received By", "Site Name",
	"Contact Person", "Mobile", "Address", "Issue", "Remark Details",
	"Attended By", "Attended Date", "Ticket Status", "Closing Date",
	"Paid Status", "Amount Received", "Feedback", "Feedback Date",
	"Feedback Taken By", "Final Remark",
}

var reportExportHeaders = []string{
	"Name", "Date", "KM In", "KM Out", "Site 1", "Service Report 1",
	"Site 2", "Service Report 2", "Site 3", "Site 4", "Service Report 3",
	"Transport Mode", "Total KM", "Amount", "Paid On",
}

func formatExportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}

func (t *Ticket) exportRow() []string {
	return []string{
		t.TicketNumber,
		formatExportDate(t.Date),
		t.ProjectType,
		t.ReceivedBy,
		t.SiteName,
		t.ContactPerson,
		t.Mobile,
		t.Address,
		t.Issue,
		t.RemarkDetails,
		t.AttendedBy,
		formatExportDate(t.AttendedDate),
		t.Status,
		formatExportDate(t.ClosingDate),
		t.PaidStatus,
		t.AmountReceived.String(),
		t.Feedback,
		formatExportDate(t.FeedbackDate),
		t.FeedbackTakenBy,
		t.FinalRemark,
	}
}

func (r *Report) exportRow() []string {
	return []string{
		r.Name,
		formatExportDate(r.Date),
		strconv.Itoa(r.KmIn),
		strconv.Itoa(r.KmOut),
		r.Site1,
		r.ServiceReport1,
		r.Site2,
		r.ServiceReport2,
		r.Site3,
		r.Site4,
		r.ServiceReport3,
		r.TransportMode,
		strconv.Itoa(r.TotalKm),
		r.Amount.String(),
		formatExportDate(r.PaidOn),
	}
}

// BuildTicketWorkbook flattens tickets into a spreadsheet, header row first.
func BuildTicketWorkbook(tickets []*Ticket) (*excelize.File, error) {
	if len(tickets) == 0 {
		return nil, ErrNoExportData
	}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, t.exportRow())
	}
	return buildWorkbook(ticketExportHeaders, rows)
}

// BuildReportWorkbook flattens reports into a spreadsheet, header row first.
func BuildReportWorkbook(reports []*Report) (*excelize.File, error) {
	if len(reports) == 0 {
		return nil, ErrNoExportData
	}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, r.exportRow())
	}
	return buildWorkbook(reportExportHeaders, rows)
}

func buildWorkbook(headers []string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}

	widths := make([]float64, len(headers))

	// Add headers
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
		widths[i] = float64(len(h))
	}

	// Add data
	for rowNo, row := range rows {
		for i, value := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNo+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
			if l := float64(len(value)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	for i := range widths {
		width := widths[i] + exportColumnPadding
		if width > exportMaxColWidth {
			width = exportMaxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}
