// Package reporting derives balance, inventory and date-range reports from
// the depot document. Reports are computed on demand and never stored.
package reporting

import (
	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/measurement"
	"github.com/mamadbah2/fueldepot/internal/workbook"
	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

// BuildBalanceReport collects the snapshots of tanks from sheet. Volume and
// mass are summed; density and temperature are averaged over the tanks
// whose density is above zero.
func BuildBalanceReport(doc *workbook.Document, reg *calibration.Registry, sheet string, tanks []string) (models.BalanceReport, error) {
	report := models.BalanceReport{Tanks: make([]models.TankSnapshot, 0, len(tanks))}
	for _, tank := range tanks {
		snap, err := measurement.Snapshot(doc, reg, sheet, tank)
		if err != nil {
			return models.BalanceReport{}, err
		}
		report.Tanks = append(report.Tanks, snap)
	}
	report.Totals = Totals(report.Tanks)
	return report, nil
}

// Totals aggregates a set of tank snapshots.
func Totals(tanks []models.TankSnapshot) models.BalanceTotals {
	var t models.BalanceTotals
	var density, temp float64
	for _, snap := range tanks {
		t.Volume += snap.Volume
		t.Mass += snap.Mass
		if snap.Density > 0 {
			density += snap.Density
			temp += snap.Temperature
			t.Measured++
		}
	}
	t.TankCount = len(tanks)
	t.Volume = rounding.Liters(t.Volume)
	t.Mass = rounding.Kilograms(t.Mass)
	if t.Measured > 0 {
		t.AvgDensity = rounding.Density(density / float64(t.Measured))
		t.AvgTemp = rounding.Temperature(temp / float64(t.Measured))
	}
	return t
}

// BuildInventoryReport groups the inventory sheet by tank shape and adds
// the RK-1 drain collector to the grand total.
func BuildInventoryReport(doc *workbook.Document, reg *calibration.Registry) (models.InventoryReport, error) {
	var report models.InventoryReport
	var err error

	rgs50, _ := reg.TankGroup(calibration.GroupRGS50)
	if report.RGS50, err = BuildBalanceReport(doc, reg, workbook.SheetInventory, rgs50); err != nil {
		return models.InventoryReport{}, err
	}
	rgs100, _ := reg.TankGroup(calibration.GroupRGS100)
	if report.RGS100, err = BuildBalanceReport(doc, reg, workbook.SheetInventory, rgs100); err != nil {
		return models.InventoryReport{}, err
	}

	all := append(append([]models.TankSnapshot{}, report.RGS50.Tanks...), report.RGS100.Tanks...)
	report.All = Totals(all)
	report.Drain = measurement.DrainSnapshot(doc, reg)
	report.TotalVolume = rounding.Liters(report.All.Volume + report.Drain.Volume)
	report.TotalMass = rounding.Kilograms(report.All.Mass + report.Drain.Mass)
	return report, nil
}
