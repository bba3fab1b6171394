package measurement

import (
	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/workbook"
	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

// RecordDrain stores the RK-1 level on the inventory sheet. The volume is an
// exact table lookup (0 when the level is not calibrated) and the mass uses
// the mean density of the inventory tanks that carry one.
func RecordDrain(doc *workbook.Document, reg *calibration.Registry, level int) models.DrainResult {
	s := doc.Section(workbook.SheetInventory)
	_ = s.Set(workbook.DrainLevelAddr, workbook.Int(level), workbook.StyleNormal)

	result := models.DrainResult{Level: level}
	if table := reg.DrainTable(); table != nil {
		result.Volume, result.Calibrated = table.Lookup(level)
	}
	result.Volume = rounding.Liters(result.Volume)
	result.AvgDensity = MeanDensity(doc, reg, workbook.SheetInventory)
	result.Mass = rounding.Mass(result.Volume, result.AvgDensity)

	_ = s.Set(workbook.DrainVolumeAddr, workbook.Number(result.Volume), workbook.StyleHighlight)
	_ = s.Set(workbook.DrainMassAddr, workbook.Number(result.Mass), workbook.StyleHighlight)
	return result
}

// DrainSnapshot reads the stored RK-1 cells.
func DrainSnapshot(doc *workbook.Document, reg *calibration.Registry) models.DrainResult {
	s, ok := doc.Lookup(workbook.SheetInventory)
	if !ok {
		return models.DrainResult{}
	}
	level := int(s.Get(workbook.DrainLevelAddr).FloatOrZero())
	result := models.DrainResult{
		Level:      level,
		Volume:     s.Get(workbook.DrainVolumeAddr).FloatOrZero(),
		Mass:       s.Get(workbook.DrainMassAddr).FloatOrZero(),
		AvgDensity: MeanDensity(doc, reg, workbook.SheetInventory),
	}
	if table := reg.DrainTable(); table != nil {
		_, result.Calibrated = table.Lookup(level)
	}
	return result
}

// MeanDensity averages the densities above zero over every catalog tank of a
// sheet, 0 when none qualifies.
func MeanDensity(doc *workbook.Document, reg *calibration.Registry, sheet string) float64 {
	s, ok := doc.Lookup(sheet)
	if !ok {
		return 0
	}
	var sum float64
	var n int
	for i := range reg.Tanks() {
		if d := s.At(workbook.ColTankDensity, workbook.TankRow(i)).FloatOrZero(); d > 0 {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
