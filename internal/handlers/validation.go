package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom validations on gin's binding engine.
// Call once at startup before any request is served.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(ruleRequestValidation, RuleRequest{})
}

// ruleRequestValidation enforces cross-field rule constraints that tag
// validations cannot express: a rule needs at least one interval, and a
// threshold must stay below its interval.
func ruleRequestValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(RuleRequest)

	if req.DistanceInterval <= 0 && req.TimeInterval <= 0 {
		sl.ReportError(req.DistanceInterval, "DistanceInterval", "distance_interval_km", "interval", "")
	}
	if req.DistanceInterval > 0 && req.DistanceThreshold >= req.DistanceInterval {
		sl.ReportError(req.DistanceThreshold, "DistanceThreshold", "distance_threshold_km", "ltintervalkm", "")
	}
	if req.TimeInterval > 0 && req.TimeThreshold >= req.TimeInterval {
		sl.ReportError(req.TimeThreshold, "TimeThreshold", "time_threshold_days", "ltintervaldays", "")
	}
}
