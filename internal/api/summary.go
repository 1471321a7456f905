package api

import (
	"context"
	"sort"

	"lsp-fixtures/internal/domain"
)

// TaskSummary aggregates one owner's task list.
type TaskSummary struct {
	Owner      string      `json:"owner"`
	Total      int         `json:"total"`
	Completed  int         `json:"completed"`
	Pending    int         `json:"pending"`
	ByPriority map[int]int `json:"by_priority"`
}

// Priorities returns the priorities present, ascending.
func (s TaskSummary) Priorities() []int {
	priorities := make([]int, 0, len(s.ByPriority))
	for p := range s.ByPriority {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)
	return priorities
}

func summarize(owner string, tasks []domain.Task) TaskSummary {
	summary := TaskSummary{
		Owner:      owner,
		Total:      len(tasks),
		ByPriority: make(map[int]int),
	}
	for _, t := range tasks {
		if t.Completed {
			summary.Completed++
		} else {
			summary.Pending++
		}
		summary.ByPriority[t.Priority]++
	}
	return summary
}

func (a *apiImpl) SummarizeTasks(ctx context.Context, owner string) (TaskSummary, error) {
	tm, err := a.loadManager(ctx, owner)
	if err != nil {
		return TaskSummary{}, err
	}
	return summarize(tm.Owner(), tm.Tasks(domain.FilterAll)), nil
}
