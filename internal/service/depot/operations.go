package depot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/ledger"
	"github.com/mamadbah2/fueldepot/internal/service/measurement"
	"github.com/mamadbah2/fueldepot/internal/service/reporting"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

// RecordTankMeasurement stores a dip of a tank on the live balance sheet.
func (s *Service) RecordTankMeasurement(ctx context.Context, tank string, in models.MeasurementInput) (models.MeasurementResult, error) {
	return s.recordMeasurement(ctx, "record tank measurement", workbook.SheetMeasurements, tank, in)
}

// RecordInventoryMeasurement stores a dip of a tank on the inventory sheet.
func (s *Service) RecordInventoryMeasurement(ctx context.Context, tank string, in models.MeasurementInput) (models.MeasurementResult, error) {
	return s.recordMeasurement(ctx, "record inventory measurement", workbook.SheetInventory, tank, in)
}

func (s *Service) recordMeasurement(ctx context.Context, op, sheet, tank string, in models.MeasurementInput) (models.MeasurementResult, error) {
	var res models.MeasurementResult
	err := s.mutate(ctx, op, true, func(doc *workbook.Document, _ time.Time) error {
		var err error
		res, err = measurement.Record(doc, s.reg, sheet, tank, in)
		return err
	})
	if err != nil {
		return models.MeasurementResult{}, err
	}
	if !res.Quantified {
		s.logger.Info("measurement saved without volume", zap.String("tank", tank), zap.String("sheet", sheet))
	}
	return res, nil
}

// RecordDrainMeasurement stores the RK-1 drain collector level.
func (s *Service) RecordDrainMeasurement(ctx context.Context, level int) (models.DrainResult, error) {
	var res models.DrainResult
	err := s.mutate(ctx, "record drain measurement", true, func(doc *workbook.Document, _ time.Time) error {
		res = measurement.RecordDrain(doc, s.reg, level)
		return nil
	})
	return res, err
}

// RecordReceipt journals a delivery and raises the tank balance.
func (s *Service) RecordReceipt(ctx context.Context, in models.ReceiptInput) (models.FlowRecord, error) {
	var rec models.FlowRecord
	err := s.mutate(ctx, "record receipt", true, func(doc *workbook.Document, now time.Time) error {
		var err error
		rec, err = ledger.RecordReceipt(doc, s.reg, in, now)
		return err
	})
	return rec, err
}

// RecordTruckIssue journals a transfer into a refueler truck.
func (s *Service) RecordTruckIssue(ctx context.Context, in models.TruckIssueInput) (models.FlowRecord, error) {
	var rec models.FlowRecord
	err := s.mutate(ctx, "record truck issue", true, func(doc *workbook.Document, now time.Time) error {
		var err error
		rec, err = ledger.RecordTruckIssue(doc, s.reg, in, now)
		return err
	})
	return rec, err
}

// RecordAircraftIssue journals an aircraft fueling.
func (s *Service) RecordAircraftIssue(ctx context.Context, in models.AircraftIssueInput) (models.FlowRecord, error) {
	var rec models.FlowRecord
	err := s.mutate(ctx, "record aircraft issue", true, func(doc *workbook.Document, now time.Time) error {
		rec = ledger.RecordAircraftIssue(doc, in, now)
		return nil
	})
	return rec, err
}

// RecordRailTankerMeasurement journals a rail tank car dip.
func (s *Service) RecordRailTankerMeasurement(ctx context.Context, in models.RailTankerInput) (models.RailTankerRecord, error) {
	var rec models.RailTankerRecord
	err := s.mutate(ctx, "record rail tanker", true, func(doc *workbook.Document, now time.Time) error {
		rec = ledger.RecordRailTanker(doc, s.reg, in, now)
		return nil
	})
	if err == nil && !rec.Calibrated {
		s.logger.Info("rail car type without calibration table", zap.String("car_type", in.CarType))
	}
	return rec, err
}

// OpenShift starts or resumes the shift of employee.
func (s *Service) OpenShift(ctx context.Context, employee string) (models.ShiftEntry, bool, error) {
	var (
		entry   models.ShiftEntry
		resumed bool
	)
	err := s.mutate(ctx, "open shift", false, func(doc *workbook.Document, now time.Time) error {
		var err error
		entry, resumed, err = shift.Open(doc, employee, now)
		return err
	})
	if err != nil {
		return models.ShiftEntry{}, false, err
	}
	s.logger.Info("shift opened", zap.String("employee", entry.Employee), zap.Bool("resumed", resumed))
	return entry, resumed, nil
}

// CloseShift ends the open shift.
func (s *Service) CloseShift(ctx context.Context) (models.ShiftEntry, error) {
	var entry models.ShiftEntry
	err := s.mutate(ctx, "close shift", false, func(doc *workbook.Document, _ time.Time) error {
		var err error
		entry, err = shift.Close(doc, s.loc)
		return err
	})
	if err != nil {
		return models.ShiftEntry{}, err
	}
	s.logger.Info("shift closed", zap.String("employee", entry.Employee))
	return entry, nil
}

// DeleteShift voids a journal entry.
func (s *Service) DeleteShift(ctx context.Context, row int) error {
	return s.mutate(ctx, "delete shift", false, func(doc *workbook.Document, _ time.Time) error {
		return shift.Delete(doc, row)
	})
}

// ActiveShift returns the open shift, if any.
func (s *Service) ActiveShift() (models.ShiftEntry, bool) {
	var (
		entry models.ShiftEntry
		ok    bool
	)
	_ = s.read(func(doc *workbook.Document, _ time.Time) error {
		entry, ok = shift.Active(doc, s.loc)
		return nil
	})
	return entry, ok
}

// BuildBalanceReport reports the live balance of tanks. An empty selection
// with a group name selects that group.
func (s *Service) BuildBalanceReport(tanks []string, group string) (models.BalanceReport, error) {
	if len(tanks) == 0 && group != "" {
		var err error
		if tanks, err = s.reg.TankGroup(group); err != nil {
			return models.BalanceReport{}, err
		}
	}
	var report models.BalanceReport
	err := s.read(func(doc *workbook.Document, _ time.Time) error {
		var err error
		report, err = reporting.BuildBalanceReport(doc, s.reg, workbook.SheetMeasurements, tanks)
		return err
	})
	return report, err
}

// BuildDateRangeReport filters a journal by calendar days.
func (s *Service) BuildDateRangeReport(kind models.ReportKind, dates []time.Time) (models.DateRangeReport, error) {
	var report models.DateRangeReport
	err := s.read(func(doc *workbook.Document, _ time.Time) error {
		var err error
		report, err = reporting.BuildDateRangeReport(doc, kind, dates, s.loc)
		return err
	})
	return report, err
}

// BuildInventoryReport reports the inventory recount.
func (s *Service) BuildInventoryReport() (models.InventoryReport, error) {
	var report models.InventoryReport
	err := s.read(func(doc *workbook.Document, _ time.Time) error {
		var err error
		report, err = reporting.BuildInventoryReport(doc, s.reg)
		return err
	})
	return report, err
}

// ArchiveDay builds the summary of date and stores it in the archive when
// one is configured.
func (s *Service) ArchiveDay(ctx context.Context, date time.Time) (models.DailyReport, error) {
	var report models.DailyReport
	err := s.read(func(doc *workbook.Document, now time.Time) error {
		var err error
		report, err = reporting.DailySummary(doc, s.reg, date.In(s.loc))
		report.CreatedAt = now
		return err
	})
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("daily summary: %w", err)
	}
	if s.archive == nil {
		return report, nil
	}
	if err := s.archive.SaveDailyReport(ctx, report); err != nil {
		return models.DailyReport{}, fmt.Errorf("archive daily summary: %w", err)
	}
	s.logger.Info("daily summary archived", zap.Time("date", report.Date))
	return report, nil
}

// ArchivedDay returns the summary stored for the day of date.
func (s *Service) ArchivedDay(ctx context.Context, date time.Time) (models.DailyReport, error) {
	if s.archive == nil {
		return models.DailyReport{}, ErrArchiveDisabled
	}
	report, err := s.archive.FindDailyReport(ctx, shift.Day(date.In(s.loc)))
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("find archived summary: %w", err)
	}
	return report, nil
}
