package types

import "time"

// DateLayout is the only accepted representation of an observation date.
const DateLayout = "2006-01-02"

type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PrecipitationReading is one observation's rainfall; Precipitation is nil when not recorded.
type PrecipitationReading struct {
	Date          string
	Precipitation *float64
}

type TemperatureObservation struct {
	Temperature *float64 `json:"tobs"`
	Date        string   `json:"date"`
	StationID   string   `json:"station"`
}

// TemperatureSummary fields are nil when no observation falls in the range.
type TemperatureSummary struct {
	Min *float64 `json:"mintemp"`
	Avg *float64 `json:"avetemp"`
	Max *float64 `json:"maxtemp"`
}

// DateRange is an inclusive span of calendar dates (UTC midnight).
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndString() string   { return r.End.Format(DateLayout) }
