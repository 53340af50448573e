package rudp

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects protocol statistics of Peers.
// A nil *Metrics discards everything.
type Metrics struct {
	PktsSent      *prometheus.CounterVec
	PktsReceived  *prometheus.CounterVec
	Retransmits   prometheus.Counter
	Duplicates    prometheus.Counter
	AcksSent      prometheus.Counter
	FramingErrors prometheus.Counter
	Peers         prometheus.Gauge
	Inflight      prometheus.Gauge
}

// NewMetrics creates Metrics and registers them with reg if it isn't nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PktsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rudp",
				Name:      "pkts_sent_total",
				Help:      "Network packets sent, by raw packet type",
			},
			[]string{"type"},
		),
		PktsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rudp",
				Name:      "pkts_received_total",
				Help:      "Network packets received, by raw packet type",
			},
			[]string{"type"},
		),
		Retransmits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rudp",
			Name:      "retransmits_total",
			Help:      "Reliable packets resent because they weren't acked in time",
		}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rudp",
			Name:      "duplicates_total",
			Help:      "Reliable packets received more than once",
		}),
		AcksSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rudp",
			Name:      "acks_sent_total",
			Help:      "Acks sent for received reliable packets",
		}),
		FramingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rudp",
			Name:      "framing_errors_total",
			Help:      "Malformed network packets dropped",
		}),
		Peers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rudp",
			Name:      "peers",
			Help:      "Open peers",
		}),
		Inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rudp",
			Name:      "inflight_pkts",
			Help:      "Reliable packets waiting for an ack",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.PktsSent,
			m.PktsReceived,
			m.Retransmits,
			m.Duplicates,
			m.AcksSent,
			m.FramingErrors,
			m.Peers,
			m.Inflight,
		)
	}

	return m
}

func (m *Metrics) sent(t rawType) {
	if m != nil {
		m.PktsSent.WithLabelValues(t.String()).Inc()
	}
}

func (m *Metrics) received(t rawType) {
	if m != nil {
		m.PktsReceived.WithLabelValues(t.String()).Inc()
	}
}

func (m *Metrics) retransmit(n int) {
	if m != nil {
		m.Retransmits.Add(float64(n))
	}
}

func (m *Metrics) duplicate() {
	if m != nil {
		m.Duplicates.Inc()
	}
}

func (m *Metrics) ackSent() {
	if m != nil {
		m.AcksSent.Inc()
	}
}

func (m *Metrics) framingError() {
	if m != nil {
		m.FramingErrors.Inc()
	}
}

func (m *Metrics) peerOpened() {
	if m != nil {
		m.Peers.Inc()
	}
}

func (m *Metrics) peerClosed() {
	if m != nil {
		m.Peers.Dec()
	}
}

func (m *Metrics) inflight(delta int) {
	if m != nil {
		m.Inflight.Add(float64(delta))
	}
}
