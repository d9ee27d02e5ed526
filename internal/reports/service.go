// Package reports aggregates fleet data into the consumption,
// kilometrage, maintenance and dashboard views.
package reports

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

// Service computes read-only reports over the fleet collections.
type Service struct {
	trucks       db.TruckCollection
	trailers     db.TrailerCollection
	trips        db.TripCollection
	maintenances db.MaintenanceCollection
	alerts       db.AlertCollection
}

// NewService creates a report service over the given repositories.
func NewService(
	trucks db.TruckCollection,
	trailers db.TrailerCollection,
	trips db.TripCollection,
	maintenances db.MaintenanceCollection,
	alerts db.AlertCollection,
) *Service {
	return &Service{
		trucks:       trucks,
		trailers:     trailers,
		trips:        trips,
		maintenances: maintenances,
		alerts:       alerts,
	}
}

// dateRangeFilter builds a bson filter on field when a bound is set.
func dateRangeFilter(field string, from, to *time.Time) bson.M {
	filter := bson.M{}
	if from == nil && to == nil {
		return filter
	}
	rangeFilter := bson.M{}
	if from != nil {
		rangeFilter["$gte"] = *from
	}
	if to != nil {
		rangeFilter["$lte"] = *to
	}
	filter[field] = rangeFilter
	return filter
}

// ConsumptionReport summarizes fuel usage over completed trips.
type ConsumptionReport struct {
	Trips            int64   `json:"trips"`
	TotalDistance    float64 `json:"total_distance"`
	TotalFuel        float64 `json:"total_fuel"`
	TotalFuelCost    float64 `json:"total_fuel_cost"`
	LitersPer100Km   float64 `json:"liters_per_100km"`
	CostPerKilometer float64 `json:"cost_per_kilometer"`
}

// Consumption builds the fuel consumption report for the date range.
func (s *Service) Consumption(ctx context.Context, from, to *time.Time) (*ConsumptionReport, error) {
	stats, err := s.trips.TripStats(ctx, dateRangeFilter("departure_date", from, to))
	if err != nil {
		return nil, err
	}

	report := &ConsumptionReport{
		Trips:         stats.Completed,
		TotalDistance: stats.TotalDistance,
		TotalFuel:     stats.TotalFuel,
		TotalFuelCost: stats.TotalFuelCost,
	}
	if stats.TotalDistance > 0 {
		report.LitersPer100Km = round2(stats.TotalFuel / stats.TotalDistance * 100)
		report.CostPerKilometer = round2(stats.TotalFuelCost / stats.TotalDistance)
	}
	return report, nil
}

// KilometrageEntry is one truck line in the kilometrage report.
type KilometrageEntry struct {
	ID              string     `json:"id"`
	Registration    string     `json:"registration"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Odometer        float64    `json:"odometer"`
	Status          string     `json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`
}

// KilometrageReport lists trucks by odometer with fleet-level figures.
type KilometrageReport struct {
	Trucks          []KilometrageEntry `json:"trucks"`
	Total           int                `json:"total"`
	TotalKilometers float64            `json:"total_kilometers"`
	AverageOdometer float64            `json:"average_odometer"`
	MaxOdometer     float64            `json:"max_odometer"`
}

// Kilometrage builds the odometer report over all trucks.
func (s *Service) Kilometrage(ctx context.Context) (*KilometrageReport, error) {
	trucks, _, err := s.trucks.FindTrucks(ctx, bson.M{}, 1, 1000)
	if err != nil {
		return nil, err
	}

	report := &KilometrageReport{Trucks: make([]KilometrageEntry, 0, len(trucks))}
	for i := range trucks {
		t := &trucks[i]
		report.Trucks = append(report.Trucks, KilometrageEntry{
			ID:              t.ID.Hex(),
			Registration:    t.Registration,
			Make:            t.Make,
			Model:           t.Model,
			Odometer:        t.Odometer,
			Status:          string(t.Status),
			LastMaintenance: t.LastMaintenance,
		})
		report.TotalKilometers += t.Odometer
		if t.Odometer > report.MaxOdometer {
			report.MaxOdometer = t.Odometer
		}
	}
	report.Total = len(trucks)
	if report.Total > 0 {
		report.AverageOdometer = round2(report.TotalKilometers / float64(report.Total))
	}
	return report, nil
}

// TypeCostStats aggregates maintenance count and cost for one type.
type TypeCostStats struct {
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

// MaintenanceReport breaks maintenance spending down by type and kind.
type MaintenanceReport struct {
	Total        int                      `json:"total"`
	TotalCost    float64                  `json:"total_cost"`
	AverageCost  float64                  `json:"average_cost"`
	ByType       map[string]TypeCostStats `json:"by_type"`
	TruckCount   int                      `json:"truck_count"`
	TrailerCount int                      `json:"trailer_count"`
}

// MaintenanceCosts builds the maintenance cost report for the date range.
func (s *Service) MaintenanceCosts(ctx context.Context, from, to *time.Time) (*MaintenanceReport, error) {
	records, err := s.maintenances.AllMaintenances(ctx, dateRangeFilter("planned_date", from, to))
	if err != nil {
		return nil, err
	}

	report := &MaintenanceReport{
		Total:  len(records),
		ByType: map[string]TypeCostStats{},
	}
	for i := range records {
		m := &records[i]
		cost := m.TotalCost()
		report.TotalCost += cost

		entry := report.ByType[string(m.Type)]
		entry.Count++
		entry.Cost = round2(entry.Cost + cost)
		report.ByType[string(m.Type)] = entry

		switch m.VehicleKind {
		case models.KindTruck:
			report.TruckCount++
		case models.KindTrailer:
			report.TrailerCount++
		}
	}
	report.TotalCost = round2(report.TotalCost)
	if report.Total > 0 {
		report.AverageCost = round2(report.TotalCost / float64(report.Total))
	}
	return report, nil
}

// VehicleStatusStats counts vehicles per operational status across kinds.
type VehicleStatusStats struct {
	Available     int `json:"available"`
	InService     int `json:"in_service"`
	InMaintenance int `json:"in_maintenance"`
	OutOfService  int `json:"out_of_service"`
}

// Dashboard is the landing overview for administrators.
type Dashboard struct {
	Vehicles VehicleStatusStats `json:"vehicles"`
	Trucks   int                `json:"trucks"`
	Trailers int                `json:"trailers"`
	Trips    models.TripStats   `json:"trips"`
	Alerts   models.AlertStats  `json:"alerts"`
}

// Overview builds the dashboard snapshot.
func (s *Service) Overview(ctx context.Context) (*Dashboard, error) {
	trucks, _, err := s.trucks.FindTrucks(ctx, bson.M{}, 1, 1000)
	if err != nil {
		return nil, err
	}
	trailers, _, err := s.trailers.FindTrailers(ctx, bson.M{}, 1, 1000)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Trucks:   len(trucks),
		Trailers: len(trailers),
	}
	for i := range trucks {
		countStatus(&dashboard.Vehicles, trucks[i].Status)
	}
	for i := range trailers {
		countStatus(&dashboard.Vehicles, trailers[i].Status)
	}

	tripStats, err := s.trips.TripStats(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	dashboard.Trips = *tripStats

	alertStats, err := s.alerts.AlertStats(ctx)
	if err != nil {
		return nil, err
	}
	dashboard.Alerts = *alertStats

	return dashboard, nil
}

func countStatus(stats *VehicleStatusStats, status models.VehicleStatus) {
	switch status {
	case models.VehicleAvailable:
		stats.Available++
	case models.VehicleInService:
		stats.InService++
	case models.VehicleInMaintenance:
		stats.InMaintenance++
	case models.VehicleOutOfService:
		stats.OutOfService++
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
