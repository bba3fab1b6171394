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

// RecordRailTanker journals a rail tank car dip. Car types without a table
// are journaled with zero volume and mass.
func RecordRailTanker(doc *workbook.Document, reg *calibration.Registry, in models.RailTankerInput, at time.Time) models.RailTankerRecord {
	density, _ := workbook.ParseNumber(in.Density)
	temp, _ := workbook.ParseNumber(in.Temperature)

	rec := models.RailTankerRecord{
		Date:        shift.Day(at),
		Time:        at.Format("15:04"),
		CarType:     in.CarType,
		CarNumber:   in.CarNumber,
		M1:          workbook.ParseCounter(in.M1),
		M2:          workbook.ParseCounter(in.M2),
		M3:          workbook.ParseCounter(in.M3),
		Density:     density,
		Temperature: temp,
	}
	rec.Average = measurement.Average(float64(rec.M1), float64(rec.M2), float64(rec.M3))

	if table, ok := reg.CarTable(in.CarType); ok {
		rec.Calibrated = true
		rec.Volume = rounding.Liters(table.Resolve(float64(rec.Average)))
		rec.Mass = rounding.Mass(rec.Volume, density)
	}

	rec.Row = doc.Section(workbook.SheetRailTankers).AppendRow(workbook.StyleNormal,
		workbook.Date(rec.Date),
		workbook.Text(rec.Time),
		workbook.Text(rec.CarType),
		workbook.Text(rec.CarNumber),
		workbook.Int(rec.M1),
		workbook.Int(rec.M2),
		workbook.Int(rec.M3),
		workbook.Int(rec.Average),
		workbook.Number(rec.Density),
		workbook.Number(rec.Temperature),
		workbook.Number(rec.Volume),
		workbook.Number(rec.Mass),
	)
	doc.Section(workbook.SheetRailTankers).SetAt(workbook.ColRailVolume, rec.Row, workbook.Number(rec.Volume), workbook.StyleHighlight)
	doc.Section(workbook.SheetRailTankers).SetAt(workbook.ColRailMass, rec.Row, workbook.Number(rec.Mass), workbook.StyleHighlight)
	return rec
}
