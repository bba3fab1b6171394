// Package measurement turns tank dips into calibrated volume and mass and
// keeps the per-tank snapshot rows of the balance and inventory sheets.
package measurement

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/workbook"
	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

// ErrUnknownTank indicates the tank is not in the calibrated catalog.
var ErrUnknownTank = errors.New("unknown tank")

// Locate returns the snapshot row and strapping table of a catalog tank.
func Locate(reg *calibration.Registry, tank string) (int, *calibration.Table, error) {
	idx, ok := reg.TankIndex(tank)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrUnknownTank, tank)
	}
	table, ok := reg.TankTable(tank)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrUnknownTank, tank)
	}
	return workbook.TankRow(idx), table, nil
}

// Average is the mean of three levels rounded half up to whole millimeters.
func Average(m1, m2, m3 float64) int {
	return rounding.HalfUp((m1 + m2 + m3) / 3)
}

// Record stores a dip for tank on sheet, replacing the previous snapshot.
// Raw entries are always written; derived cells are only filled when the
// levels (and, for mass, the density) read as numbers. Unknown tanks are
// rejected before anything is written.
func Record(doc *workbook.Document, reg *calibration.Registry, sheet, tank string, in models.MeasurementInput) (models.MeasurementResult, error) {
	row, table, err := Locate(reg, tank)
	if err != nil {
		return models.MeasurementResult{}, err
	}

	s := doc.Section(sheet)
	m1, m2, m3 := workbook.Parse(in.M1), workbook.Parse(in.M2), workbook.Parse(in.M3)
	density := workbook.Parse(in.Density)
	temp := workbook.Parse(in.Temperature)

	s.SetAt(workbook.ColTankName, row, workbook.Text(tank), workbook.StyleNormal)
	s.SetAt(workbook.ColTankM1, row, m1, workbook.StyleNormal)
	s.SetAt(workbook.ColTankM2, row, m2, workbook.StyleNormal)
	s.SetAt(workbook.ColTankM3, row, m3, workbook.StyleNormal)
	s.SetAt(workbook.ColTankDensity, row, density, workbook.StyleNormal)
	s.SetAt(workbook.ColTankTemp, row, temp, workbook.StyleNormal)

	result := models.MeasurementResult{Tank: tank}

	if !m1.IsNumber() || !m2.IsNumber() || !m3.IsNumber() {
		s.SetAt(workbook.ColTankAverage, row, workbook.Empty(), workbook.StyleHighlight)
		s.SetAt(workbook.ColTankVolume, row, workbook.Empty(), workbook.StyleHighlight)
		s.SetAt(workbook.ColTankMass, row, workbook.Empty(), workbook.StyleHighlight)
		return result, nil
	}

	avg := Average(m1.NumberOrZero(), m2.NumberOrZero(), m3.NumberOrZero())
	volume := rounding.Liters(table.Resolve(float64(avg)))
	result.Average = avg
	result.Volume = volume
	result.Quantified = true

	s.SetAt(workbook.ColTankAverage, row, workbook.Int(avg), workbook.StyleHighlight)
	s.SetAt(workbook.ColTankVolume, row, workbook.Number(volume), workbook.StyleHighlight)

	if density.IsNumber() {
		result.Mass = rounding.Mass(volume, density.NumberOrZero())
		result.HasMass = true
		s.SetAt(workbook.ColTankMass, row, workbook.Number(result.Mass), workbook.StyleHighlight)
	} else {
		s.SetAt(workbook.ColTankMass, row, workbook.Empty(), workbook.StyleHighlight)
	}

	return result, nil
}

// Snapshot reads the current row of a tank. Blank or unreadable cells count
// as 0; a tank that was never measured yields zeros.
func Snapshot(doc *workbook.Document, reg *calibration.Registry, sheet, tank string) (models.TankSnapshot, error) {
	row, _, err := Locate(reg, tank)
	if err != nil {
		return models.TankSnapshot{}, err
	}

	snap := models.TankSnapshot{Name: tank}
	s, ok := doc.Lookup(sheet)
	if !ok {
		return snap, nil
	}

	snap.M1 = s.At(workbook.ColTankM1, row).String()
	snap.M2 = s.At(workbook.ColTankM2, row).String()
	snap.M3 = s.At(workbook.ColTankM3, row).String()
	snap.Average = s.At(workbook.ColTankAverage, row).FloatOrZero()
	snap.Density = s.At(workbook.ColTankDensity, row).FloatOrZero()
	snap.Temperature = s.At(workbook.ColTankTemp, row).FloatOrZero()
	snap.Volume = s.At(workbook.ColTankVolume, row).FloatOrZero()
	snap.Mass = s.At(workbook.ColTankMass, row).FloatOrZero()
	return snap, nil
}
