package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// ExportVehicles builds an xlsx workbook with one sheet per vehicle kind.
// The caller owns the returned file and is responsible for closing it.
func (s *Service) ExportVehicles(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()

	trucks, _, err := s.trucks.FindTrucks(ctx, bson.M{}, 1, 1000)
	if err != nil {
		f.Close()
		return nil, err
	}
	trailers, _, err := s.trailers.FindTrailers(ctx, bson.M{}, 1, 1000)
	if err != nil {
		f.Close()
		return nil, err
	}

	const truckSheet = "Trucks"
	f.SetSheetName("Sheet1", truckSheet)
	truckHeaders := []interface{}{"Registration", "Make", "Model", "Year", "Odometer (km)", "Status", "Last Maintenance"}
	if err := f.SetSheetRow(truckSheet, "A1", &truckHeaders); err != nil {
		f.Close()
		return nil, err
	}
	for i := range trucks {
		t := &trucks[i]
		row := []interface{}{
			t.Registration, t.Make, t.Model, t.Year, t.Odometer, string(t.Status),
			formatDate(t.LastMaintenance),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(truckSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	const trailerSheet = "Trailers"
	if _, err := f.NewSheet(trailerSheet); err != nil {
		f.Close()
		return nil, err
	}
	trailerHeaders := []interface{}{"Registration", "Type", "Capacity", "Status", "Last Maintenance"}
	if err := f.SetSheetRow(trailerSheet, "A1", &trailerHeaders); err != nil {
		f.Close()
		return nil, err
	}
	for i := range trailers {
		t := &trailers[i]
		row := []interface{}{
			t.Registration, string(t.Type), t.Capacity, string(t.Status),
			formatDate(t.LastMaintenance),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(trailerSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
