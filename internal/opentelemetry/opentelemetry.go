package opentelemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

//nolint:gochecknoglobals // a single meter shared by all components
var DefaultMeter metric.Meter = otel.Meter("org.naieum.omni")
