package reporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

var ErrUnknownReportKind = errors.New("unknown report kind")

// ParseKind validates a report kind coming from the outside.
func ParseKind(s string) (models.ReportKind, error) {
	switch k := models.ReportKind(s); k {
	case models.ReportReceipts, models.ReportTruck, models.ReportAircraft, models.ReportShifts, models.ReportRail:
		return k, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownReportKind)
}

type journal struct {
	sheet   string
	dateCol int
	read    func(r workbook.Row, rr *models.ReportRow)
}

var journals = map[models.ReportKind]journal{
	models.ReportReceipts: {workbook.SheetReceipts, workbook.ColReceiptDate, func(r workbook.Row, rr *models.ReportRow) {
		rr.Tank = r.Cell(workbook.ColReceiptTank).String()
		rr.Liters = r.Cell(workbook.ColReceiptLiters).FloatOrZero()
		rr.Kg = r.Cell(workbook.ColReceiptKg).FloatOrZero()
	}},
	models.ReportTruck: {workbook.SheetTruckIssues, workbook.ColTruckDate, func(r workbook.Row, rr *models.ReportRow) {
		rr.Truck = r.Cell(workbook.ColTruckNumber).String()
		rr.Tank = r.Cell(workbook.ColTruckTank).String()
		rr.Liters = r.Cell(workbook.ColTruckLiters).FloatOrZero()
		rr.Kg = r.Cell(workbook.ColTruckKg).FloatOrZero()
	}},
	models.ReportAircraft: {workbook.SheetAircraftIssues, workbook.ColAircraftDate, func(r workbook.Row, rr *models.ReportRow) {
		rr.Truck = r.Cell(workbook.ColAircraftTruck).String()
		rr.Coupon = r.Cell(workbook.ColAircraftCoupon).String()
		rr.Liters = r.Cell(workbook.ColAircraftLiters).FloatOrZero()
		rr.Kg = r.Cell(workbook.ColAircraftKg).FloatOrZero()
	}},
	models.ReportRail: {workbook.SheetRailTankers, workbook.ColRailDate, func(r workbook.Row, rr *models.ReportRow) {
		rr.CarType = r.Cell(workbook.ColRailType).String()
		rr.Car = r.Cell(workbook.ColRailNumber).String()
		rr.Liters = r.Cell(workbook.ColRailVolume).FloatOrZero()
		rr.Kg = r.Cell(workbook.ColRailMass).FloatOrZero()
	}},
	models.ReportShifts: {workbook.SheetShifts, workbook.ColShiftDate, func(r workbook.Row, rr *models.ReportRow) {
		totals := shift.TotalsFromRow(r)
		rr.Employee = r.Cell(workbook.ColShiftEmployee).String()
		rr.Status = r.Cell(workbook.ColShiftStatus).String()
		rr.Shift = &totals
	}},
}

// BuildDateRangeReport lists the rows of a journal whose calendar day is one
// of dates, each tagged with the employee on shift that day. No dates means
// no rows.
func BuildDateRangeReport(doc *workbook.Document, kind models.ReportKind, dates []time.Time, loc *time.Location) (models.DateRangeReport, error) {
	j, ok := journals[kind]
	if !ok {
		return models.DateRangeReport{}, fmt.Errorf("%q: %w", kind, ErrUnknownReportKind)
	}
	if loc == nil {
		loc = time.UTC
	}

	report := models.DateRangeReport{Kind: kind, Rows: []models.ReportRow{}}
	if len(dates) == 0 {
		return report, nil
	}
	s, ok := doc.Lookup(j.sheet)
	if !ok {
		return report, nil
	}

	for _, r := range s.Rows(workbook.FirstDataRow) {
		date, ok := r.Cell(j.dateCol).Date(loc)
		if !ok || !matchesAny(date, dates) {
			continue
		}
		rr := models.ReportRow{Row: r.Number, Date: date}
		j.read(r, &rr)
		if rr.Employee == "" {
			rr.Employee = shift.EmployeeFor(doc, date)
		}

		report.Totals.Liters += rr.Liters
		report.Totals.Kg += rr.Kg
		if rr.Shift != nil {
			report.Totals.Shift = report.Totals.Shift.Add(*rr.Shift)
		}
		report.Rows = append(report.Rows, rr)
	}

	report.Totals.Liters = rounding.Liters(report.Totals.Liters)
	report.Totals.Kg = rounding.Kilograms(report.Totals.Kg)
	report.Totals.Shift = shift.RoundTotals(report.Totals.Shift)
	return report, nil
}

func matchesAny(date time.Time, dates []time.Time) bool {
	for _, d := range dates {
		if shift.SameDay(date, d) {
			return true
		}
	}
	return false
}
