package models

import "time"

// BloodPressureReading is a single measurement. Readings are immutable once
// stored; the timestamp is assigned by the backend at insertion time.
type BloodPressureReading struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Systolic  int       `json:"systolic"`
	Diastolic int       `json:"diastolic"`
	HeartRate int       `json:"heartRate"`
	Timestamp time.Time `json:"timestamp"`
}
