package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

// DailySummary gathers the end-of-day figures for date: who worked, what
// flowed, the live balance and the rail cars measured.
func DailySummary(doc *workbook.Document, reg *calibration.Registry, date time.Time) (models.DailyReport, error) {
	day := shift.Day(date)
	report := models.DailyReport{
		Date:      day,
		Employees: []string{},
		Totals:    shift.Totals(doc, day),
	}

	seen := make(map[string]bool)
	for _, e := range shift.Entries(doc, day.Location()) {
		if !shift.SameDay(e.Date, day) || e.Employee == "" || seen[e.Employee] {
			continue
		}
		seen[e.Employee] = true
		report.Employees = append(report.Employees, e.Employee)
	}

	balance, err := BuildBalanceReport(doc, reg, workbook.SheetMeasurements, reg.Tanks())
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("balance: %w", err)
	}
	report.Balance = balance.Totals

	rail, err := BuildDateRangeReport(doc, models.ReportRail, []time.Time{day}, day.Location())
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("rail tankers: %w", err)
	}
	report.RailCars = len(rail.Rows)
	report.RailL = rail.Totals.Liters
	report.RailKg = rail.Totals.Kg
	return report, nil
}

// FormatDailySummary renders a daily report as a short text message.
func FormatDailySummary(r models.DailyReport) string {
	employees := "no shift logged"
	if len(r.Employees) > 0 {
		employees = strings.Join(r.Employees, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fuel depot summary %s (%s)\n", r.Date.Format(workbook.DateLayout), employees)
	fmt.Fprintf(&b, "Received: %.2f L / %.2f kg\n", r.Totals.ReceivedL, r.Totals.ReceivedKg)
	fmt.Fprintf(&b, "Issued to trucks: %.2f L / %.2f kg\n", r.Totals.IssuedTruckL, r.Totals.IssuedTruckKg)
	fmt.Fprintf(&b, "Issued to aircraft: %.2f L / %.2f kg\n", r.Totals.IssuedAirL, r.Totals.IssuedAirKg)
	if r.RailCars > 0 {
		fmt.Fprintf(&b, "Rail cars: %d, %.2f L / %.2f kg\n", r.RailCars, r.RailL, r.RailKg)
	}
	fmt.Fprintf(&b, "Balance: %.2f L / %.2f kg, density %.4f, %.1f°C (%d of %d tanks measured)",
		r.Balance.Volume, r.Balance.Mass, r.Balance.AvgDensity, r.Balance.AvgTemp, r.Balance.Measured, r.Balance.TankCount)
	return b.String()
}
