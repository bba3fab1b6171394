package models

import "time"

// BalanceTotals aggregates a balance report.
type BalanceTotals struct {
	Volume     float64 `json:"volume" bson:"volume"`
	Mass       float64 `json:"mass" bson:"mass"`
	AvgDensity float64 `json:"avg_density" bson:"avg_density"`
	AvgTemp    float64 `json:"avg_temp" bson:"avg_temp"`
	Measured   int     `json:"measured" bson:"measured"`
	TankCount  int     `json:"tank_count" bson:"tank_count"`
}

// BalanceReport lists tank snapshots and their totals.
type BalanceReport struct {
	Tanks  []TankSnapshot `json:"tanks"`
	Totals BalanceTotals  `json:"totals"`
}

// ReportKind names the journal a date-range report reads.
type ReportKind string

const (
	ReportReceipts ReportKind = "receipts"
	ReportTruck    ReportKind = "truck"
	ReportAircraft ReportKind = "aircraft"
	ReportShifts   ReportKind = "shifts"
	ReportRail     ReportKind = "rail"
)

// ReportRow is one journal row matched by a date-range report.
type ReportRow struct {
	Row      int          `json:"row"`
	Date     time.Time    `json:"date"`
	Employee string       `json:"employee"`
	Tank     string       `json:"tank,omitempty"`
	Truck    string       `json:"truck,omitempty"`
	Coupon   string       `json:"coupon,omitempty"`
	CarType  string       `json:"car_type,omitempty"`
	Car      string       `json:"car,omitempty"`
	Status   string       `json:"status,omitempty"`
	Liters   float64      `json:"liters"`
	Kg       float64      `json:"kg"`
	Shift    *ShiftTotals `json:"shift,omitempty"`
}

// ReportTotals sums the numeric fields of the matched rows.
type ReportTotals struct {
	Liters float64     `json:"liters"`
	Kg     float64     `json:"kg"`
	Shift  ShiftTotals `json:"shift"`
}

// DateRangeReport is the result of filtering a journal by calendar days.
type DateRangeReport struct {
	Kind   ReportKind   `json:"kind"`
	Rows   []ReportRow  `json:"rows"`
	Totals ReportTotals `json:"totals"`
}

// InventoryReport groups the inventory recount by tank shape.
type InventoryReport struct {
	RGS50       BalanceReport `json:"rgs50"`
	RGS100      BalanceReport `json:"rgs100"`
	All         BalanceTotals `json:"all"`
	Drain       DrainResult   `json:"drain"`
	TotalVolume float64       `json:"total_volume"`
	TotalMass   float64       `json:"total_mass"`
}

// DailyReport is the end-of-day summary archived to MongoDB.
type DailyReport struct {
	Date      time.Time     `bson:"date" json:"date"`
	Employees []string      `bson:"employees" json:"employees"`
	Totals    ShiftTotals   `bson:"totals" json:"totals"`
	Balance   BalanceTotals `bson:"balance" json:"balance"`
	RailCars  int           `bson:"rail_cars" json:"rail_cars"`
	RailL     float64       `bson:"rail_l" json:"rail_l"`
	RailKg    float64       `bson:"rail_kg" json:"rail_kg"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}
