package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaintenance_TotalCost(t *testing.T) {
	m := Maintenance{
		Cost:      50,
		LaborCost: 200,
		Parts: []Part{
			{Name: "Oil filter", Quantity: 1, UnitPrice: 25},
			{Name: "Brake pad", Quantity: 4, UnitPrice: 60},
		},
	}

	// 50 + 200 + 25 + 240
	assert.Equal(t, 515.0, m.TotalCost())
}

func TestMaintenance_TotalCostWithoutParts(t *testing.T) {
	m := Maintenance{LaborCost: 120}
	assert.Equal(t, 120.0, m.TotalCost())

	empty := Maintenance{}
	assert.Zero(t, empty.TotalCost())
}
