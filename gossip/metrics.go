package gossip

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the gossip counters. Collectors exist even when they are not
// registered anywhere, so callers never need to nil-check them.
type Metrics struct {
	Received *prometheus.CounterVec // by message code
	Sent     *prometheus.CounterVec // by message code
	Invalid  prometheus.Counter

	PostsStored   prometheus.Counter
	PostsRejected prometheus.Counter
	PostsMissing  prometheus.Counter // parents requested

	KnownPeers prometheus.Gauge
}

// NewMetrics creates the gossip collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	nc := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	}
	ncv := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{"code"})
	}

	m := &Metrics{
		Received:      ncv("postchain_gossip_messages_received", "Total number of messages received, by code"),
		Sent:          ncv("postchain_gossip_messages_sent", "Total number of reply messages produced, by code"),
		Invalid:       nc("postchain_gossip_messages_invalid", "Total number of undecodable messages received"),
		PostsStored:   nc("postchain_gossip_posts_stored", "Total number of new posts stored"),
		PostsRejected: nc("postchain_gossip_posts_rejected", "Total number of posts rejected for low score"),
		PostsMissing:  nc("postchain_gossip_posts_missing", "Total number of parent posts requested"),
		KnownPeers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "postchain_gossip_peers_known",
			Help: "Number of peers known to the node",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Received, m.Sent, m.Invalid, m.PostsStored, m.PostsRejected, m.PostsMissing, m.KnownPeers)
	}
	return m
}
