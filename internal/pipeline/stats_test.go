package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/accelerate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStatuses(statuses ...types.ApplicationStatus) []types.Application {
	apps := make([]types.Application, len(statuses))
	for i, s := range statuses {
		apps[i] = types.NewApplication(uuid.New(), uuid.New(), s, now)
	}
	return apps
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		apps     []types.Application
		total    int
		active   int
		accepted int
		rejected int
		rate     *int
	}{
		{
			name: "empty pipeline",
			apps: nil,
		},
		{
			name:   "nothing decided",
			apps:   withStatuses(types.StatusIdentified, types.StatusInterview, types.StatusWithdrawn),
			total:  3,
			active: 2,
		},
		{
			name: "three accepted one rejected",
			apps: withStatuses(
				types.StatusAccepted, types.StatusAccepted, types.StatusAccepted,
				types.StatusRejected, types.StatusSubmitted, types.StatusExpired,
			),
			total:    6,
			active:   1,
			accepted: 3,
			rejected: 1,
			rate:     intPtr(75),
		},
		{
			name:     "rounds to nearest",
			apps:     withStatuses(types.StatusAccepted, types.StatusRejected, types.StatusRejected),
			total:    3,
			accepted: 1,
			rejected: 2,
			rate:     intPtr(33),
		},
		{
			name:     "rounds half up",
			apps:     withStatuses(types.StatusAccepted, types.StatusRejected, types.StatusRejected, types.StatusRejected, types.StatusRejected, types.StatusRejected, types.StatusRejected, types.StatusRejected),
			total:    8,
			accepted: 1,
			rejected: 7,
			rate:     intPtr(13),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.apps)
			assert.Equal(t, tt.total, stats.Total)
			assert.Equal(t, tt.active, stats.Active)
			assert.Equal(t, tt.accepted, stats.Accepted)
			assert.Equal(t, tt.rejected, stats.Rejected)
			if tt.rate == nil {
				assert.Nil(t, stats.SuccessRate)
				return
			}
			require.NotNil(t, stats.SuccessRate)
			assert.Equal(t, *tt.rate, *stats.SuccessRate)
		})
	}
}

func TestComputeStats_ByStatus(t *testing.T) {
	stats := ComputeStats(withStatuses(types.StatusDrafting, types.StatusDrafting, types.StatusReady))

	assert.Equal(t, 2, stats.ByStatus[types.StatusDrafting])
	assert.Equal(t, 1, stats.ByStatus[types.StatusReady])
	assert.Equal(t, 0, stats.ByStatus[types.StatusAccepted])
}

func intPtr(v int) *int {
	return &v
}
