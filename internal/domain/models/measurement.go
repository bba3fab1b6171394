package models

// MeasurementInput carries the raw dip readings typed by the operator.
type MeasurementInput struct {
	M1          string `json:"m1"`
	M2          string `json:"m2"`
	M3          string `json:"m3"`
	Density     string `json:"density"`
	Temperature string `json:"temperature"`
}

// MeasurementResult is what the calculator derived from a dip.
// Quantified is false when the levels could not be read as numbers.
type MeasurementResult struct {
	Tank       string  `json:"tank"`
	Average    int     `json:"average"`
	Volume     float64 `json:"volume"`
	Mass       float64 `json:"mass"`
	Quantified bool    `json:"quantified"`
	HasMass    bool    `json:"has_mass"`
}

// TankSnapshot is the current state of one tank row.
type TankSnapshot struct {
	Name        string  `json:"name"`
	M1          string  `json:"m1"`
	M2          string  `json:"m2"`
	M3          string  `json:"m3"`
	Average     float64 `json:"average"`
	Density     float64 `json:"density"`
	Temperature float64 `json:"temperature"`
	Volume      float64 `json:"volume"`
	Mass        float64 `json:"mass"`
}

// DrainResult is the RK-1 inventory reading.
type DrainResult struct {
	Level      int     `json:"level"`
	Volume     float64 `json:"volume"`
	Mass       float64 `json:"mass"`
	AvgDensity float64 `json:"avg_density"`
	Calibrated bool    `json:"calibrated"`
}
