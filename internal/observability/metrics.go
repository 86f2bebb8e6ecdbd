package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationWrites counts notification feed writes by type and outcome.
	NotificationWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_notification_writes_total",
		Help: "Total notification feed writes by type and outcome",
	}, []string{"type", "outcome"})

	// MembershipMutations counts membership store mutations by operation.
	MembershipMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_membership_mutations_total",
		Help: "Total membership mutations by operation",
	}, []string{"operation"})

	// DiscussionMutations counts discussion tree mutations by operation.
	DiscussionMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_discussion_mutations_total",
		Help: "Total discussion tree mutations by operation",
	}, []string{"operation"})

	// InviteOutcomes counts invitation processing outcomes.
	InviteOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_invite_outcomes_total",
		Help: "Total invitation outcomes by status and reason",
	}, []string{"status", "reason"})
)
