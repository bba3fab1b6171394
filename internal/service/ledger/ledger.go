// Package ledger appends receipts, issuances and rail tanker dips to their
// journals. Receipts also raise the live balance of the receiving tank;
// issuances are only journaled and never lower a tank balance.
package ledger

import (
	"time"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/measurement"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

// RecordReceipt journals a delivery into a tank and adds it to the tank's
// live volume and mass. The density is the one last measured in the tank.
func RecordReceipt(doc *workbook.Document, reg *calibration.Registry, in models.ReceiptInput, at time.Time) (models.FlowRecord, error) {
	row, _, err := measurement.Locate(reg, in.Tank)
	if err != nil {
		return models.FlowRecord{}, err
	}

	balance := doc.Section(workbook.SheetMeasurements)
	density := balance.At(workbook.ColTankDensity, row).FloatOrZero()

	rec := newFlow(models.FlowReceipt, in.CounterStart, in.CounterEnd, density, at)
	rec.Tank = in.Tank

	log := doc.Section(workbook.SheetReceipts)
	rec.Row = log.AppendRow(workbook.StyleNormal,
		workbook.Date(rec.Date),
		workbook.Text(rec.Tank),
		workbook.Int(rec.CounterStart),
		workbook.Int(rec.CounterEnd),
		workbook.Number(rec.Liters),
		workbook.Number(rec.Kg),
	)

	volume := rounding.Liters(balance.At(workbook.ColTankVolume, row).FloatOrZero() + rec.Liters)
	mass := rounding.Kilograms(balance.At(workbook.ColTankMass, row).FloatOrZero() + rec.Kg)
	balance.SetAt(workbook.ColTankVolume, row, workbook.Number(volume), workbook.StyleHighlight)
	balance.SetAt(workbook.ColTankMass, row, workbook.Number(mass), workbook.StyleHighlight)

	shift.Recalculate(doc, rec.Date)
	return rec, nil
}

// RecordTruckIssue journals a transfer from a tank into a refueler truck.
func RecordTruckIssue(doc *workbook.Document, reg *calibration.Registry, in models.TruckIssueInput, at time.Time) (models.FlowRecord, error) {
	row, _, err := measurement.Locate(reg, in.Tank)
	if err != nil {
		return models.FlowRecord{}, err
	}

	density := doc.Section(workbook.SheetMeasurements).At(workbook.ColTankDensity, row).FloatOrZero()

	rec := newFlow(models.FlowTruck, in.CounterStart, in.CounterEnd, density, at)
	rec.Tank = in.Tank
	rec.Truck = in.Truck

	rec.Row = doc.Section(workbook.SheetTruckIssues).AppendRow(workbook.StyleNormal,
		workbook.Date(rec.Date),
		workbook.Text(rec.Truck),
		workbook.Text(rec.Tank),
		workbook.Int(rec.CounterStart),
		workbook.Int(rec.CounterEnd),
		workbook.Number(rec.Liters),
		workbook.Number(rec.Kg),
	)

	shift.Recalculate(doc, rec.Date)
	return rec, nil
}

// RecordAircraftIssue journals a fueling by coupon. The density comes from
// the coupon certificate typed by the operator.
func RecordAircraftIssue(doc *workbook.Document, in models.AircraftIssueInput, at time.Time) models.FlowRecord {
	density, _ := workbook.ParseNumber(in.Density)

	rec := newFlow(models.FlowAircraft, in.CounterStart, in.CounterEnd, density, at)
	rec.Truck = in.Truck
	rec.Coupon = in.Coupon

	rec.Row = doc.Section(workbook.SheetAircraftIssues).AppendRow(workbook.StyleNormal,
		workbook.Date(rec.Date),
		workbook.Text(rec.Truck),
		workbook.Text(rec.Coupon),
		workbook.Int(rec.CounterStart),
		workbook.Int(rec.CounterEnd),
		workbook.Number(rec.Density),
		workbook.Number(rec.Liters),
		workbook.Number(rec.Kg),
	)

	shift.Recalculate(doc, rec.Date)
	return rec
}

// newFlow derives the delta of two counters. End below start is kept as a
// negative delta.
func newFlow(kind models.FlowKind, start, end string, density float64, at time.Time) models.FlowRecord {
	s, e := workbook.ParseCounter(start), workbook.ParseCounter(end)
	liters := float64(e - s)
	return models.FlowRecord{
		Kind:         kind,
		Date:         shift.Day(at),
		CounterStart: s,
		CounterEnd:   e,
		Density:      density,
		Liters:       liters,
		Kg:           rounding.Mass(liters, density),
	}
}
