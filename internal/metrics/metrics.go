package metrics

import "callcenter-platform/internal/calls"

// Summary holds dashboard call metrics derived from a record sequence.
// Absent durations count as zero; absent statuses simply never count as
// completed, so the completed/other proportion degenerates to [0, total]
// instead of failing.
type Summary struct {
	TotalCalls             int `json:"total_calls"`
	TotalDurationSeconds   int `json:"total_duration_seconds"`
	TotalMinutes           int `json:"total_minutes"`
	AverageDurationSeconds int `json:"average_duration_seconds"`
	CompletedCount         int `json:"completed_count"`
}

func Aggregate(records []calls.Record) Summary {
	out := Summary{TotalCalls: len(records)}
	for _, r := range records {
		if r.DurationSeconds > 0 {
			out.TotalDurationSeconds += r.DurationSeconds
		}
		if r.Status == calls.StatusCompleted {
			out.CompletedCount++
		}
	}
	out.TotalMinutes = out.TotalDurationSeconds / 60
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / out.TotalCalls
	}
	return out
}

// Proportion is the two-slice completed-vs-other split fed to the dashboard
// donut chart.
func (s Summary) Proportion() [2]int {
	return [2]int{s.CompletedCount, s.TotalCalls - s.CompletedCount}
}
