package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	TransitionApplied = "applied"
	TransitionDenied  = "denied"
	TransitionInvalid = "invalid"
	TransitionFailed  = "failed"
)

var (
	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_order_transitions_total",
		Help: "Order status transitions by outcome.",
	},
		[]string{"result"},
	)

	CascadedChildOrdersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_cascaded_child_orders_total",
		Help: "Child orders updated as part of a parent transition.",
	})

	ExportedRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_exported_rows_total",
		Help: "Rows written to CSV exports.",
	},
		[]string{"export"},
	)

	MediaErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_media_errors_total",
		Help: "Failed operations against the public disk.",
	},
		[]string{"operation"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "Served HTTP requests.",
	},
		[]string{"method", "route", "status"},
	)
)

// Handler exposes registered metrics in Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
