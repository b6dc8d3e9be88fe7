package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ClassificationsTriggered prometheus.Counter
	ClassificationsCompleted *prometheus.CounterVec
	WorkflowsCreated         prometheus.Counter
	WorkflowStepsAdvanced    *prometheus.CounterVec
	WorkflowStepDuration     *prometheus.HistogramVec
	CollaboratorFailures     *prometheus.CounterVec
	CommunicationsSent       prometheus.Counter
	ManualReviewDecisions    *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ClassificationsTriggered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "iclm_classifications_triggered_total",
			Help: "Total number of regulatory classifications triggered",
		}),
		ClassificationsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "iclm_classifications_completed_total",
			Help: "Total number of regulatory classifications reaching a status, by status",
		}, []string{"status"}),
		WorkflowsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "iclm_workflows_created_total",
			Help: "Total number of onboarding workflows created",
		}),
		WorkflowStepsAdvanced: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "iclm_workflow_steps_advanced_total",
			Help: "Total number of workflow step executions, by step and resulting status",
		}, []string{"step", "status"}),
		WorkflowStepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iclm_workflow_step_duration_seconds",
			Help:    "Duration of workflow step executions",
			Buckets: prometheus.DefBuckets,
		}, []string{"step"}),
		CollaboratorFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "iclm_collaborator_failures_total",
			Help: "Total number of failed upstream collaborator calls, by collaborator",
		}, []string{"collaborator"}),
		CommunicationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "iclm_communications_sent_total",
			Help: "Total number of outbound client communications generated",
		}),
		ManualReviewDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "iclm_manual_review_decisions_total",
			Help: "Total number of manual review decisions, by outcome",
		}, []string{"decision"}),
	}
}
