// Package maintenance implements the rule evaluation and alert generation
// that decide when a vehicle is due for maintenance.
package maintenance

import (
	"time"

	"github.com/elouannasse/fleet-management/internal/models"
)

// Evaluate decides whether a maintenance alert is due for the vehicle
// under the given rule. The distance and time checks are OR-combined: a
// rule with both intervals configured fires on whichever threshold is
// crossed first.
//
// A rule with only a time interval never fires for a vehicle without a
// last-maintenance date; the time check is skipped, not treated as
// infinitely overdue.
func Evaluate(v models.VehicleSnapshot, rule *models.MaintenanceRule, now time.Time) bool {
	if rule.DistanceInterval > 0 {
		kmSince := v.Odometer - v.LastMaintenanceKm
		if kmSince >= rule.DistanceInterval-rule.DistanceThreshold {
			return true
		}
	}

	if rule.TimeInterval > 0 && v.LastMaintenance != nil {
		daysSince := int(now.Sub(*v.LastMaintenance).Hours() / 24)
		if daysSince >= rule.TimeInterval-rule.TimeThreshold {
			return true
		}
	}

	return false
}
