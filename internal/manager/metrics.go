package manager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	addTaskCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fx_tasks_added_total",
			Help: "Total number of AddTask operations",
		},
	)

	completeTaskCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_tasks_completed_total",
			Help: "Total number of CompleteTask operations by outcome",
		},
		[]string{"status"},
	)

	taskTitleLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fx_task_title_length_bytes",
			Help:    "Length distribution of task titles",
			Buckets: []float64{10, 50, 100, 500},
		},
	)

	addTaskDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fx_add_task_duration_seconds",
			Help:    "Duration of AddTask operation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
