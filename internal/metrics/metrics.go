package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChangeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maitri_change_requests_total",
		Help: "Change requests submitted, by request type.",
	}, []string{"type"})

	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maitri_change_request_decisions_total",
		Help: "Terminal transitions of change requests, by outcome.",
	}, []string{"outcome"})

	RetireFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maitri_asset_retire_failures_total",
		Help: "Object store retirements that failed and were left for manual cleanup.",
	}, []string{"op"})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maitri_asset_uploads_total",
		Help: "Image uploads to the object store, by result.",
	}, []string{"result"})
)
