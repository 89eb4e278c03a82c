package movie

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opGet = "get"
	opPut = "put"

	resultHit  = "hit"
	resultMiss = "miss"
	resultOK   = "ok"
)

type InstrumentedStore struct {
	next Store
	ops  *prometheus.CounterVec
}

func NewInstrumentedStore(next Store, reg prometheus.Registerer) *InstrumentedStore {
	s := &InstrumentedStore{
		next: next,
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movie_store_operations_total",
				Help: "Movie store operations by kind and result.",
			},
			[]string{"op", "result"},
		),
	}

	size := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "movie_store_movies",
			Help: "Number of movies currently held in the store.",
		},
		func() float64 { return float64(next.Len()) },
	)

	reg.MustRegister(s.ops, size)
	return s
}

func (s *InstrumentedStore) Get(id string) (Movie, bool) {
	m, ok := s.next.Get(id)
	if ok {
		s.ops.WithLabelValues(opGet, resultHit).Inc()
	} else {
		s.ops.WithLabelValues(opGet, resultMiss).Inc()
	}
	return m, ok
}

func (s *InstrumentedStore) Put(m Movie) {
	s.next.Put(m)
	s.ops.WithLabelValues(opPut, resultOK).Inc()
}

func (s *InstrumentedStore) Len() int { return s.next.Len() }

func (s *InstrumentedStore) Ping(ctx context.Context) error { return s.next.Ping(ctx) }
