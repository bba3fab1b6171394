package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/ledger"
	"github.com/mamadbah2/fueldepot/internal/service/measurement"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

var (
	monday  = time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func newDoc(t *testing.T) (*workbook.Document, *calibration.Registry) {
	t.Helper()
	reg, err := calibration.Load()
	require.NoError(t, err)
	return workbook.New(reg.Tanks()), reg
}

func setSnapshot(doc *workbook.Document, sheet string, row int, density, temp, volume, mass float64) {
	s := doc.Section(sheet)
	s.SetAt(workbook.ColTankDensity, row, workbook.Number(density), workbook.StyleNone)
	s.SetAt(workbook.ColTankTemp, row, workbook.Number(temp), workbook.StyleNone)
	s.SetAt(workbook.ColTankVolume, row, workbook.Number(volume), workbook.StyleNone)
	s.SetAt(workbook.ColTankMass, row, workbook.Number(mass), workbook.StyleNone)
}

func TestBalanceReportEmptySet(t *testing.T) {
	doc, reg := newDoc(t)

	report, err := BuildBalanceReport(doc, reg, workbook.SheetMeasurements, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Tanks)
	assert.Equal(t, models.BalanceTotals{}, report.Totals)
}

func TestBalanceReportAveragesMeasuredTanksOnly(t *testing.T) {
	doc, reg := newDoc(t)
	setSnapshot(doc, workbook.SheetMeasurements, workbook.TankRow(0), 0, 0, 100, 0)
	setSnapshot(doc, workbook.SheetMeasurements, workbook.TankRow(1), 0.74, 10, 100, 74)
	setSnapshot(doc, workbook.SheetMeasurements, workbook.TankRow(2), 0.76, 12, 100, 76)

	tanks := reg.Tanks()[:3]
	report, err := BuildBalanceReport(doc, reg, workbook.SheetMeasurements, tanks)
	require.NoError(t, err)

	assert.Len(t, report.Tanks, 3)
	assert.Equal(t, 300.0, report.Totals.Volume)
	assert.Equal(t, 150.0, report.Totals.Mass)
	assert.Equal(t, 0.75, report.Totals.AvgDensity)
	assert.Equal(t, 11.0, report.Totals.AvgTemp)
	assert.Equal(t, 2, report.Totals.Measured)
	assert.Equal(t, 3, report.Totals.TankCount)
}

func TestBalanceReportUnknownTank(t *testing.T) {
	doc, reg := newDoc(t)

	_, err := BuildBalanceReport(doc, reg, workbook.SheetMeasurements, []string{"RGS-50 #1", "RGS-75 #9"})
	assert.ErrorIs(t, err, measurement.ErrUnknownTank)
}

func TestInventoryReportIncludesDrain(t *testing.T) {
	doc, reg := newDoc(t)
	setSnapshot(doc, workbook.SheetInventory, workbook.TankRow(0), 0.78, 10, 1000, 780)
	setSnapshot(doc, workbook.SheetInventory, workbook.TankRow(8), 0.80, 12, 2000, 1600)
	drain := measurement.RecordDrain(doc, reg, 250)

	report, err := BuildInventoryReport(doc, reg)
	require.NoError(t, err)

	assert.Len(t, report.RGS50.Tanks, 8)
	assert.Len(t, report.RGS100.Tanks, 4)
	assert.Equal(t, 1000.0, report.RGS50.Totals.Volume)
	assert.Equal(t, 2000.0, report.RGS100.Totals.Volume)
	assert.Equal(t, 3000.0, report.All.Volume)
	assert.Equal(t, 0.79, report.All.AvgDensity)
	assert.Equal(t, drain.Volume, report.Drain.Volume)
	assert.InDelta(t, 3000+671.01, report.TotalVolume, 0.001)
	assert.InDelta(t, 2380+drain.Mass, report.TotalMass, 0.001)
}

func TestDateRangeReportEmptyDates(t *testing.T) {
	doc, reg := newDoc(t)
	_, err := ledger.RecordReceipt(doc, reg, models.ReceiptInput{Tank: "RGS-50 #1", CounterStart: "0", CounterEnd: "100"}, monday)
	require.NoError(t, err)

	for _, kind := range []models.ReportKind{models.ReportReceipts, models.ReportTruck, models.ReportAircraft, models.ReportShifts, models.ReportRail} {
		report, err := BuildDateRangeReport(doc, kind, nil, time.UTC)
		require.NoError(t, err)
		assert.Empty(t, report.Rows, kind)
		assert.Equal(t, models.ReportTotals{}, report.Totals, kind)
	}
}

func TestDateRangeReportMatchesCalendarDays(t *testing.T) {
	doc, reg := newDoc(t)
	setSnapshot(doc, workbook.SheetMeasurements, workbook.TankRow(0), 0.74, 15, 0, 0)

	_, _, err := shift.Open(doc, "Ivanov", monday)
	require.NoError(t, err)
	for _, in := range []models.ReceiptInput{
		{Tank: "RGS-50 #1", CounterStart: "1000", CounterEnd: "1500"},
		{Tank: "RGS-50 #1", CounterStart: "1500", CounterEnd: "1600"},
	} {
		_, err = ledger.RecordReceipt(doc, reg, in, monday.Add(3*time.Hour))
		require.NoError(t, err)
	}
	_, err = shift.Close(doc, time.UTC)
	require.NoError(t, err)

	_, err = ledger.RecordReceipt(doc, reg, models.ReceiptInput{Tank: "RGS-50 #1", CounterStart: "0", CounterEnd: "10"}, tuesday)
	require.NoError(t, err)

	report, err := BuildDateRangeReport(doc, models.ReportReceipts, []time.Time{monday.Add(12 * time.Hour)}, time.UTC)
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Ivanov", report.Rows[0].Employee)
	assert.Equal(t, "RGS-50 #1", report.Rows[0].Tank)
	assert.Equal(t, 600.0, report.Totals.Liters)
	assert.Equal(t, 444.0, report.Totals.Kg)

	report, err = BuildDateRangeReport(doc, models.ReportReceipts, []time.Time{monday, tuesday}, time.UTC)
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, shift.NoEmployee, report.Rows[2].Employee)

	shifts, err := BuildDateRangeReport(doc, models.ReportShifts, []time.Time{monday}, time.UTC)
	require.NoError(t, err)
	require.Len(t, shifts.Rows, 1)
	assert.Equal(t, workbook.StatusClosed, shifts.Rows[0].Status)
	require.NotNil(t, shifts.Rows[0].Shift)
	assert.Equal(t, 600.0, shifts.Rows[0].Shift.ReceivedL)
	assert.Equal(t, 444.0, shifts.Totals.Shift.ReceivedKg)
}

func TestDateRangeReportUnknownKind(t *testing.T) {
	doc, _ := newDoc(t)

	_, err := BuildDateRangeReport(doc, models.ReportKind("fuel"), []time.Time{monday}, time.UTC)
	assert.ErrorIs(t, err, ErrUnknownReportKind)

	_, err = ParseKind("fuel")
	assert.ErrorIs(t, err, ErrUnknownReportKind)
	kind, err := ParseKind("rail")
	require.NoError(t, err)
	assert.Equal(t, models.ReportRail, kind)
}

func TestDailySummary(t *testing.T) {
	doc, reg := newDoc(t)
	setSnapshot(doc, workbook.SheetMeasurements, workbook.TankRow(0), 0.74, 15, 0, 0)

	_, _, err := shift.Open(doc, "Ivanov", monday)
	require.NoError(t, err)
	_, err = ledger.RecordReceipt(doc, reg, models.ReceiptInput{Tank: "RGS-50 #1", CounterStart: "1000", CounterEnd: "1500"}, monday)
	require.NoError(t, err)
	ledger.RecordRailTanker(doc, reg, models.RailTankerInput{CarType: "72", CarNumber: "1", M1: "500", M2: "500", M3: "500", Density: "0.8"}, monday)

	report, err := DailySummary(doc, reg, monday.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, shift.Day(monday), report.Date)
	assert.Equal(t, []string{"Ivanov"}, report.Employees)
	assert.Equal(t, 500.0, report.Totals.ReceivedL)
	assert.Equal(t, 500.0, report.Balance.Volume)
	assert.Equal(t, 1, report.RailCars)
	assert.Equal(t, 7890.84, report.RailL)

	text := FormatDailySummary(report)
	assert.Contains(t, text, "2024-03-04")
	assert.Contains(t, text, "Ivanov")
	assert.Contains(t, text, "Received: 500.00 L / 370.00 kg")
	assert.Contains(t, text, "Rail cars: 1")
}
