package maintenance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

// Generator evaluates every active rule against every eligible vehicle
// and inserts at most one open alert per (vehicle, rule) pair. It holds
// no state between runs.
type Generator struct {
	rules    db.RuleCollection
	vehicles db.VehicleStore
	alerts   db.AlertCollection
	now      func() time.Time
}

// NewGenerator creates an alert generator over the given repositories.
func NewGenerator(rules db.RuleCollection, vehicles db.VehicleStore, alerts db.AlertCollection) *Generator {
	return &Generator{
		rules:    rules,
		vehicles: vehicles,
		alerts:   alerts,
		now:      time.Now,
	}
}

// GenerateAlerts runs one evaluation pass and returns how many alerts it
// created. Vehicles that are out-of-service are skipped, as are pairs
// that already have an untreated alert. The first store error aborts the
// whole batch.
func (g *Generator) GenerateAlerts(ctx context.Context) (int, error) {
	activeRules, err := g.rules.FindActiveRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading active rules: %w", err)
	}
	if len(activeRules) == 0 {
		return 0, nil
	}

	generated := 0
	for _, kind := range []models.VehicleKind{models.KindTruck, models.KindTrailer} {
		n, err := g.generateForKind(ctx, kind, activeRules)
		if err != nil {
			return generated, err
		}
		generated += n
	}

	log.WithField("alerts_generated", generated).Info("maintenance alert check completed")
	return generated, nil
}

func (g *Generator) generateForKind(ctx context.Context, kind models.VehicleKind, activeRules []models.MaintenanceRule) (int, error) {
	vehicles, err := g.vehicles.ListEligible(ctx, kind)
	if err != nil {
		return 0, fmt.Errorf("loading %ss: %w", kind, err)
	}

	generated := 0
	for _, vehicle := range vehicles {
		for i := range activeRules {
			rule := &activeRules[i]
			if !rule.AppliesTo(kind) {
				continue
			}
			if !Evaluate(vehicle, rule, g.now()) {
				continue
			}

			exists, err := g.alerts.HasUntreatedAlert(ctx, kind, vehicle.ID, rule.ID)
			if err != nil {
				return generated, fmt.Errorf("checking existing alert: %w", err)
			}
			if exists {
				continue
			}

			alert := g.buildAlert(vehicle, rule)
			if _, err := g.alerts.InsertAlert(ctx, alert); err != nil {
				if errors.Is(err, db.ErrDuplicate) {
					// A concurrent run inserted the same pair first.
					continue
				}
				return generated, fmt.Errorf("inserting alert: %w", err)
			}
			generated++

			log.WithFields(log.Fields{
				"vehicle": vehicle.Registration,
				"rule":    rule.Name,
				"urgent":  alert.Urgent,
			}).Debug("maintenance alert generated")
		}
	}
	return generated, nil
}

// buildAlert constructs the alert document for a (vehicle, rule) pair
// that Evaluate judged due. The remaining-distance formula runs even for
// time-only rules, where the zero interval makes the remaining distance
// negative: such alerts always read as overdue and urgent.
func (g *Generator) buildAlert(v models.VehicleSnapshot, rule *models.MaintenanceRule) models.MaintenanceAlert {
	kmRemaining := rule.DistanceInterval - (v.Odometer - v.LastMaintenanceKm)

	message := rule.Name + ": "
	switch {
	case kmRemaining <= 0:
		message += fmt.Sprintf("maintenance required immediately (%.0f km overdue)", math.Abs(kmRemaining))
	case kmRemaining <= rule.DistanceThreshold:
		message += fmt.Sprintf("maintenance required within %.0f km", kmRemaining)
	}

	urgent := kmRemaining <= 0 || kmRemaining <= rule.DistanceThreshold/2

	var deadline *time.Time
	if rule.TimeInterval > 0 && v.LastMaintenance != nil {
		d := v.LastMaintenance.AddDate(0, 0, rule.TimeInterval)
		deadline = &d
	}

	return models.MaintenanceAlert{
		VehicleKind: v.Kind,
		VehicleID:   v.ID,
		RuleID:      rule.ID,
		AlertType:   rule.AlertType,
		Message:     message,
		Odometer:    v.Odometer,
		DueOdometer: v.LastMaintenanceKm + rule.DistanceInterval,
		GeneratedAt: g.now(),
		Deadline:    deadline,
		Urgent:      urgent,
	}
}
