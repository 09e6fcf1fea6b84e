// internal/httpserver/metrics.go
//
// Prometheus metrics for the carbonclash backend, exposed on /metrics.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var playthroughsStarted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "carbonclash_playthroughs_started_total",
	Help: "Playthrough sessions created (free play and daily).",
})

var cardsPlayed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "carbonclash_cards_played_total",
	Help: "Cards played across all sessions.",
})

var playthroughsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "carbonclash_playthroughs_finished_total",
	Help: "Playthroughs that reached a terminal status.",
}, []string{"status"})

// mountMetrics registers the /metrics endpoint.
func (s *Server) mountMetrics() {
	s.r.Handle("/metrics", promhttp.Handler())
}
