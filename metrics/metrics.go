package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters of dataset reads. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	EntriesOpened  prometheus.Counter
	EntriesSkipped *prometheus.CounterVec
	RecordsDecoded *prometheus.CounterVec
	DecodeErrors   *prometheus.CounterVec
	CorruptEntries prometheus.Counter
	BytesRead      prometheus.Counter
}

// New creates the counters and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EntriesOpened: f.NewCounter(prometheus.CounterOpts{
			Name: "synthpop_entries_opened_total",
			Help: "Total number of dataset entries opened for reading",
		}),
		EntriesSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "synthpop_entries_skipped_total",
			Help: "Total number of dataset entries skipped without reading",
		}, []string{"reason"}),
		RecordsDecoded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "synthpop_records_decoded_total",
			Help: "Total number of records decoded, by record kind",
		}, []string{"kind"}),
		DecodeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "synthpop_decode_errors_total",
			Help: "Total number of rows that failed to decode, by reason",
		}, []string{"reason"}),
		CorruptEntries: f.NewCounter(prometheus.CounterOpts{
			Name: "synthpop_corrupt_entries_total",
			Help: "Total number of entries abandoned because their data was corrupt",
		}),
		BytesRead: f.NewCounter(prometheus.CounterOpts{
			Name: "synthpop_bytes_read_total",
			Help: "Total number of decoded bytes read from dataset entries",
		}),
	}
}

func (m *Metrics) IncrementEntriesOpened() {
	if m == nil {
		return
	}
	m.EntriesOpened.Inc()
}

func (m *Metrics) IncrementEntriesSkipped(reason string) {
	if m == nil {
		return
	}
	m.EntriesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementRecordsDecoded(kind string) {
	if m == nil {
		return
	}
	m.RecordsDecoded.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementDecodeErrors(reason string) {
	if m == nil {
		return
	}
	m.DecodeErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementCorruptEntries() {
	if m == nil {
		return
	}
	m.CorruptEntries.Inc()
}

func (m *Metrics) AddBytesRead(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.BytesRead.Add(float64(n))
}
