package entity

import "fmt"

// DutyRules holds the configured duty-time limits. These are simplified
// stand-ins for real flight-time regulation and are configuration, not law.
type DutyRules struct {
	MaxDutyHours int
	MinRestHours int
}

// Validate rejects non-positive limits. Called at configuration load so a
// bad limit never reaches a legality check.
func (r DutyRules) Validate() error {
	if r.MaxDutyHours <= 0 {
		return fmt.Errorf("max duty hours must be positive, got %d", r.MaxDutyHours)
	}
	if r.MinRestHours <= 0 {
		return fmt.Errorf("min rest hours must be positive, got %d", r.MinRestHours)
	}
	return nil
}
