package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaintenanceRule_Validate(t *testing.T) {
	// A rule without any interval is invalid
	rule := MaintenanceRule{Name: "Empty"}
	assert.ErrorIs(t, rule.Validate(), ErrRuleNoInterval)

	// Distance threshold must stay below the interval
	rule = MaintenanceRule{DistanceInterval: 1000, DistanceThreshold: 1000}
	assert.ErrorIs(t, rule.Validate(), ErrRuleThresholdTooBig)

	// Time threshold must stay below the interval
	rule = MaintenanceRule{TimeInterval: 7, TimeThreshold: 10}
	assert.ErrorIs(t, rule.Validate(), ErrRuleThresholdTooBig)

	// Valid distance-only rule
	rule = MaintenanceRule{DistanceInterval: 10000, DistanceThreshold: 1000}
	assert.NoError(t, rule.Validate())

	// Valid mixed rule
	rule = MaintenanceRule{
		DistanceInterval:  20000,
		DistanceThreshold: 1500,
		TimeInterval:      180,
		TimeThreshold:     14,
	}
	assert.NoError(t, rule.Validate())
}

func TestMaintenanceRule_AppliesTo(t *testing.T) {
	// Empty kinds list covers everything
	rule := MaintenanceRule{}
	assert.True(t, rule.AppliesTo(KindTruck))
	assert.True(t, rule.AppliesTo(KindTrailer))

	rule.VehicleKinds = []VehicleKind{KindTruck}
	assert.True(t, rule.AppliesTo(KindTruck))
	assert.False(t, rule.AppliesTo(KindTrailer))
}
