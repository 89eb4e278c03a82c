package movie

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	arrival = Movie{ID: "m1", Name: "Arrival", Year: 2016, WasGood: true}
	cats    = Movie{ID: "m1", Name: "Cats", Year: 2019, WasGood: false}
)

func TestMemStore_RoundTrip(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)

	got, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, arrival, got)
	assert.Equal(t, 1, s.Len())
}

func TestMemStore_ReplaceIsWholeRecord(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)
	s.Put(cats)

	got, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, cats, got)
	assert.Equal(t, 1, s.Len())
}

func TestMemStore_Absent(t *testing.T) {
	s := NewMemStore()

	got, ok := s.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, Movie{}, got)
}

func TestMemStore_GetReturnsCopy(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)

	got, _ := s.Get("m1")
	got.Name = "changed"
	got.WasGood = false

	again, _ := s.Get("m1")
	assert.Equal(t, arrival, again)
}

func TestMemStore_Ping(t *testing.T) {
	s := NewMemStore()
	assert.NoError(t, s.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestMemStore_ReadersDoNotBlockEachOther(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)

	// A reader holding the guard must not keep other readers out.
	s.mu.RLock()
	defer s.mu.RUnlock()

	done := make(chan Movie)
	go func() {
		m, _ := s.Get("m1")
		done <- m
	}()

	select {
	case m := <-done:
		assert.Equal(t, arrival, m)
	case <-time.After(2 * time.Second):
		t.Fatal("Get blocked behind another reader")
	}
}

func TestMemStore_WriterWaitsForReaders(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)

	s.mu.RLock()

	done := make(chan struct{})
	go func() {
		s.Put(cats)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Put ran while a reader held the guard")
	case <-time.After(50 * time.Millisecond):
	}

	s.mu.RUnlock()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Put never acquired the guard")
	}

	got, _ := s.Get("m1")
	assert.Equal(t, cats, got)
}

func TestMemStore_ConcurrentReadersSeeSameSnapshot(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			m, ok := s.Get("m1")
			if !ok || m != arrival {
				return fmt.Errorf("got %+v ok=%v", m, ok)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestMemStore_NoTornReads(t *testing.T) {
	s := NewMemStore()
	s.Put(arrival)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for i := 0; gctx.Err() == nil; i++ {
			if i%2 == 0 {
				s.Put(cats)
			} else {
				s.Put(arrival)
			}
		}
		return nil
	})

	for r := 0; r < 8; r++ {
		g.Go(func() error {
			for gctx.Err() == nil {
				m, ok := s.Get("m1")
				if !ok {
					return fmt.Errorf("movie vanished")
				}
				if m != arrival && m != cats {
					return fmt.Errorf("torn read: %+v", m)
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestMemStore_ConcurrentDistinctKeys(t *testing.T) {
	s := NewMemStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(Movie{ID: fmt.Sprintf("m%d", i), Name: "n", Year: uint16(1900 + i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
	got, ok := s.Get("m42")
	require.True(t, ok)
	assert.Equal(t, uint16(1942), got.Year)
}
