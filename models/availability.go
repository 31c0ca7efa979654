package models

// IntervalSlots groups the generated slot start times under the schedule
// interval they came from, so clients can render per-interval availability.
type IntervalSlots struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Slots []string `json:"slots"`
}

// DayAvailability is the availability response for one doctor and date.
// Slots is the flat legacy view; Intervals is the grouped view.
type DayAvailability struct {
	DoctorID  string          `json:"doctorId"`
	Date      string          `json:"date"`
	Slots     []string        `json:"slots"`
	Intervals []IntervalSlots `json:"intervals"`
}
