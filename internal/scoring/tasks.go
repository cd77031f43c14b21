// Package scoring - overdue task penalties.
package scoring

import (
	"time"

	"github.com/portview/portview-backend/model"
)

const (
	overdueBasePenalty   = 3
	overdueSeverePenalty = 5
	overdueSevereDays    = 30
)

// OverdueTaskPenalty sums per-task penalties for overdue lifecycle tasks.
// A task 30 or more days late takes the escalated penalty in place of the
// base one; the sum across tasks is uncapped.
func OverdueTaskPenalty(tasks []model.LifecycleTask, now time.Time) int {
	penalty := 0
	for i := range tasks {
		if !tasks[i].IsOverdue(now) {
			continue
		}
		if tasks[i].DaysOverdue(now) >= overdueSevereDays {
			penalty += overdueSeverePenalty
		} else {
			penalty += overdueBasePenalty
		}
	}
	return penalty
}
