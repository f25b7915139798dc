package export

import (
	"bytes"
	"strconv"

	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	dailySheet     = "Daily Occupancy"
	checkInsSheet  = "Check-ins"
	checkOutsSheet = "Check-outs"

	dateLayout = "2006-01-02"
)

var movementHeader = []string{"Room", "Customer", "Check-in", "Check-out", "Voucher", "Notes"}

// RangeReportWorkbook renders an occupancy range report as an xlsx workbook:
// a summary sheet, the per-day occupancy series, and the arrival/departure
// lists for the range.
func RangeReportWorkbook(report *queries.RangeReportView, checkIns, checkOuts []*queries.ReservationView) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, errs.Wrap(err, "failed to create header style")
	}

	if err := writeSummarySheet(f, headerStyle, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeDailySheet(f, headerStyle, report.Daily); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeMovementSheet(f, headerStyle, checkInsSheet, checkIns); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeMovementSheet(f, headerStyle, checkOutsSheet, checkOuts); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, errs.Wrap(err, "failed to drop default sheet")
	}
	if idx, err := f.GetSheetIndex(summarySheet); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, errs.Wrap(err, "failed to serialize workbook")
	}
	if err := f.Close(); err != nil {
		return nil, errs.Wrap(err, "failed to close workbook")
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, report *queries.RangeReportView) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return errs.Wrap(err, "failed to create summary sheet")
	}

	rows := [][]any{
		{"Report mode", report.Mode},
		{"From", report.Start.Format(dateLayout)},
		{"To", report.End.Format(dateLayout)},
		{"Total rooms", report.TotalRooms},
		{"Rooms booked in range", report.BookedRooms},
		{"Bookings starting in range", report.TotalBookings},
		{"Average occupancy %", report.AverageOccupancy},
	}
	for i, row := range rows {
		labelCell := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(summarySheet, labelCell, &row); err != nil {
			return errs.Wrap(err, "failed to write summary row")
		}
		if err := f.SetCellStyle(summarySheet, labelCell, labelCell, headerStyle); err != nil {
			return errs.Wrap(err, "failed to style summary row")
		}
	}
	return setColumnWidths(f, summarySheet, []float64{28, 16})
}

func writeDailySheet(f *excelize.File, headerStyle int, daily []queries.DailyOccupancy) error {
	if _, err := f.NewSheet(dailySheet); err != nil {
		return errs.Wrap(err, "failed to create daily sheet")
	}

	header := []any{"Date", "Rooms booked", "Occupancy %"}
	if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
		return errs.Wrap(err, "failed to write daily header")
	}
	if err := f.SetCellStyle(dailySheet, "A1", "C1", headerStyle); err != nil {
		return errs.Wrap(err, "failed to style daily header")
	}

	for i, day := range daily {
		row := []any{day.Date.Format(dateLayout), day.BookedRooms, day.Rate}
		if err := f.SetSheetRow(dailySheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return errs.Wrap(err, "failed to write daily row")
		}
	}
	return setColumnWidths(f, dailySheet, []float64{14, 14, 14})
}

func writeMovementSheet(f *excelize.File, headerStyle int, sheet string, reservations []*queries.ReservationView) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errs.Wrap(err, "failed to create movement sheet")
	}

	header := make([]any, len(movementHeader))
	for i, h := range movementHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errs.Wrap(err, "failed to write movement header")
	}
	lastCell, err := excelize.CoordinatesToCellName(len(movementHeader), 1)
	if err != nil {
		return errs.Wrap(err, "failed to locate header cell")
	}
	if err := f.SetCellStyle(sheet, "A1", lastCell, headerStyle); err != nil {
		return errs.Wrap(err, "failed to style movement header")
	}

	for i, r := range reservations {
		voucherNo := ""
		if r.VoucherNumber != nil {
			voucherNo = *r.VoucherNumber
		}
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		row := []any{
			r.RoomNumber,
			r.CustomerName,
			r.CheckIn.Format(dateLayout),
			r.CheckOut.Format(dateLayout),
			voucherNo,
			notes,
		}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return errs.Wrap(err, "failed to write movement row")
		}
	}
	return setColumnWidths(f, sheet, []float64{10, 28, 14, 14, 18, 32})
}

func setColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errs.Wrap(err, "failed to resolve column name")
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return errs.Wrap(err, "failed to set column width")
		}
	}
	return nil
}
