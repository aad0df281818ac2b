// Package telemetry is the CLI dispatcher's structured-logging wrapper: a
// thin shim over zap, plus a host-CPU log field used for diagnostic color
// on startup. The parsing core (json, streamio, rbtree) never imports this
// package -- it stays a pure library.
package telemetry

import (
	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console-encoded zap logger suitable for a CLI: no
// timestamps cluttering test output, level and message only plus fields.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}

// Fields returns structured log fields describing the host CPU, attached
// to the CLI's startup log line.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("cpu_brand", cpuid.CPU.BrandName),
		zap.Int("cpu_physical_cores", cpuid.CPU.PhysicalCores),
		zap.Int("cpu_logical_cores", cpuid.CPU.LogicalCores),
		zap.Strings("cpu_features", featureStrings()),
	}
}

func featureStrings() []string {
	var out []string
	for _, f := range []cpuid.FeatureID{cpuid.SSE2, cpuid.AVX, cpuid.AVX2, cpuid.AVX512F} {
		if cpuid.CPU.Supports(f) {
			out = append(out, f.String())
		}
	}
	return out
}
