package pipeline

import (
	"math"

	"github.com/jonathan/accelerate/internal/types"
)

// Stats summarizes an application pipeline.
type Stats struct {
	Total    int
	ByStatus map[types.ApplicationStatus]int
	Active   int
	Accepted int
	Rejected int

	// SuccessRate is accepted / (accepted + rejected) as a rounded percentage.
	// It is nil while nothing has been decided.
	SuccessRate *int
}

// ComputeStats counts applications per status and derives the pipeline totals.
func ComputeStats(apps []types.Application) Stats {
	stats := Stats{
		Total:    len(apps),
		ByStatus: make(map[types.ApplicationStatus]int, len(types.Statuses)),
	}
	for _, a := range apps {
		stats.ByStatus[a.Status]++
		if a.Status.Active() {
			stats.Active++
		}
	}
	stats.Accepted = stats.ByStatus[types.StatusAccepted]
	stats.Rejected = stats.ByStatus[types.StatusRejected]

	if decided := stats.Accepted + stats.Rejected; decided > 0 {
		rate := int(math.Round(float64(stats.Accepted) / float64(decided) * 100))
		stats.SuccessRate = &rate
	}
	return stats
}
