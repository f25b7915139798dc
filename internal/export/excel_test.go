//go:build unit

package export_test

import (
	"bytes"
	"testing"
	"time"

	"lodgekeeper/internal/export"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleReport() *queries.RangeReportView {
	return &queries.RangeReportView{
		Mode:             queries.ReportModeWeekly,
		Start:            date(2025, 6, 9),
		End:              date(2025, 6, 15),
		TotalRooms:       10,
		BookedRooms:      7,
		TotalBookings:    4,
		AverageOccupancy: 42.86,
		Daily: []queries.DailyOccupancy{
			{Date: date(2025, 6, 9), BookedRooms: 5, Rate: 50},
			{Date: date(2025, 6, 10), BookedRooms: 3, Rate: 30},
		},
	}
}

func TestRangeReportWorkbook(t *testing.T) {
	t.Parallel()

	voucherNo := "VCH-001"
	checkIns := []*queries.ReservationView{
		{
			ID:            uuid.New(),
			RoomNumber:    "12",
			CustomerName:  "Jane Banda",
			VoucherNumber: &voucherNo,
			CheckIn:       date(2025, 6, 9),
			CheckOut:      date(2025, 6, 12),
			Status:        "confirmed",
		},
	}
	checkOuts := []*queries.ReservationView{
		{
			ID:           uuid.New(),
			RoomNumber:   "3",
			CustomerName: "John Phiri",
			CheckIn:      date(2025, 6, 6),
			CheckOut:     date(2025, 6, 10),
			Status:       "confirmed",
		},
	}

	data, err := export.RangeReportWorkbook(sampleReport(), checkIns, checkOuts)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err, "output must be a readable xlsx workbook")
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Daily Occupancy", "Check-ins", "Check-outs"},
		f.GetSheetList())

	mode, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, queries.ReportModeWeekly, mode)

	from, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", from)

	firstDay, err := f.GetCellValue("Daily Occupancy", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", firstDay)

	booked, err := f.GetCellValue("Daily Occupancy", "B2")
	require.NoError(t, err)
	assert.Equal(t, "5", booked)

	arrival, err := f.GetCellValue("Check-ins", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Banda", arrival)

	departure, err := f.GetCellValue("Check-outs", "B2")
	require.NoError(t, err)
	assert.Equal(t, "John Phiri", departure)
}

func TestRangeReportWorkbook_EmptyRange(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	report.Daily = nil
	report.BookedRooms = 0
	report.TotalBookings = 0
	report.AverageOccupancy = 0

	data, err := export.RangeReportWorkbook(report, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Check-ins", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Room", header, "headers are written even with no rows")
}
