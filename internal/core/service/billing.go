package service

import (
	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// CalculateBilling derives invoice totals for a task selection. Only logs
// whose task is in the selection and not yet billed contribute; each log is
// priced at its task's current rate. A selected task with zero unbilled logs
// contributes nothing but stays a valid member of the invoice's task set.
//
// Pure function: for a fixed snapshot of tasks, logs, and billed index, the
// result is deterministic regardless of call order.
func CalculateBilling(
	selection []string,
	tasks []*domain.Task,
	logs []*domain.TimeLog,
	billed map[string]string,
) ports.BillingResult {
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	billable := make(map[string]*domain.Task, len(selection))
	for _, id := range UnbilledTaskIDs(selection, billed) {
		if t, ok := byID[id]; ok {
			billable[id] = t
		}
	}

	var result ports.BillingResult
	for _, log := range logs {
		task, ok := billable[log.TaskID]
		if !ok {
			continue
		}
		result.TotalHours += log.Hours
		result.TotalAmount += log.Hours * task.Rate
		result.IncludedLogs = append(result.IncludedLogs, log)
	}
	return result
}

// UnbilledTaskIDs filters a selection down to tasks absent from the billed
// index.
func UnbilledTaskIDs(selection []string, billed map[string]string) []string {
	out := make([]string, 0, len(selection))
	for _, id := range selection {
		if _, ok := billed[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
