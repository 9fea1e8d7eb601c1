// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordOperationAndDuration(t *testing.T) {
	obs := New("observability-test")
	defer obs.Shutdown()

	require.NotNil(t, obs.opCounter)
	require.NotNil(t, obs.opDuration)

	ctx := context.Background()
	obs.RecordOperation(ctx, "/api/leads", "2xx")
	obs.RecordOperation(ctx, "/api/leads", "4xx")
	obs.RecordDuration(ctx, "/api/leads", 42*time.Millisecond, "2xx")
}

func TestZeroValueIsSafe(t *testing.T) {
	var obs Observability

	ctx := context.Background()
	obs.RecordOperation(ctx, "/health", "2xx")
	obs.RecordDuration(ctx, "/health", time.Millisecond, "2xx")
	obs.Shutdown()
}
