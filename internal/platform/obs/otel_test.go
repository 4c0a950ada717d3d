package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "parking-booking", "", "test")
	require.NoError(t, err)

	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, propagation.TraceContext{}, otel.GetTextMapPropagator())
}
