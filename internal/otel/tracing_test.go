package otel

import (
	"context"
	"testing"

	"exportdocs/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		name, arg string
		want      string
	}{
		{"always_on", "", trace.AlwaysSample().Description()},
		{"always_off", "", trace.NeverSample().Description()},
		{"traceidratio", "0.25", trace.TraceIDRatioBased(0.25).Description()},
		{"traceidratio", "garbage", trace.TraceIDRatioBased(1).Description()},
		{"parentbased_traceidratio", "0.5", trace.ParentBased(trace.TraceIDRatioBased(0.5)).Description()},
		{"unknown", "", trace.ParentBased(trace.AlwaysSample()).Description()},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, sampler(tt.name, tt.arg).Description())
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	shutdown, err := Init(context.Background(), logging.Discard())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
