package models

import "time"

// FlowKind names a flow journal.
type FlowKind string

const (
	FlowReceipt  FlowKind = "receipt"
	FlowTruck    FlowKind = "truck"
	FlowAircraft FlowKind = "aircraft"
)

// FlowRecord is one appended row of a flow journal.
type FlowRecord struct {
	Row          int       `json:"row"`
	Kind         FlowKind  `json:"kind"`
	Date         time.Time `json:"date"`
	Tank         string    `json:"tank,omitempty"`
	Truck        string    `json:"truck,omitempty"`
	Coupon       string    `json:"coupon,omitempty"`
	CounterStart int       `json:"counter_start"`
	CounterEnd   int       `json:"counter_end"`
	Density      float64   `json:"density"`
	Liters       float64   `json:"liters"`
	Kg           float64   `json:"kg"`
}

// ReceiptInput is a delivery into a depot tank.
type ReceiptInput struct {
	Tank         string `json:"tank" binding:"required"`
	CounterStart string `json:"counter_start"`
	CounterEnd   string `json:"counter_end"`
}

// TruckIssueInput is a transfer from a depot tank into a refueler truck.
type TruckIssueInput struct {
	Truck        string `json:"truck" binding:"required"`
	Tank         string `json:"tank" binding:"required"`
	CounterStart string `json:"counter_start"`
	CounterEnd   string `json:"counter_end"`
}

// AircraftIssueInput is a fueling of an aircraft from a truck, by coupon.
type AircraftIssueInput struct {
	Truck        string `json:"truck" binding:"required"`
	Coupon       string `json:"coupon" binding:"required"`
	CounterStart string `json:"counter_start"`
	CounterEnd   string `json:"counter_end"`
	Density      string `json:"density"`
}

// RailTankerInput is a dip of a rail tank car.
type RailTankerInput struct {
	CarType     string `json:"car_type" binding:"required"`
	CarNumber   string `json:"car_number" binding:"required"`
	M1          string `json:"m1"`
	M2          string `json:"m2"`
	M3          string `json:"m3"`
	Density     string `json:"density"`
	Temperature string `json:"temperature"`
}

// RailTankerRecord is one appended row of the rail tanker journal.
type RailTankerRecord struct {
	Row         int       `json:"row"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	CarType     string    `json:"car_type"`
	CarNumber   string    `json:"car_number"`
	M1          int       `json:"m1"`
	M2          int       `json:"m2"`
	M3          int       `json:"m3"`
	Average     int       `json:"average"`
	Density     float64   `json:"density"`
	Temperature float64   `json:"temperature"`
	Volume      float64   `json:"volume"`
	Mass        float64   `json:"mass"`
	Calibrated  bool      `json:"calibrated"`
}
