package history

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

func req(c float64) domain.ProjectionRequest {
	return domain.ProjectionRequest{PeriodicContribution: c, AnnualRatePercent: 5, HorizonYears: 20}
}

func TestSummarize(t *testing.T) {
	got := Summarize(domain.ProjectionRequest{PeriodicContribution: 10000, AnnualRatePercent: 5, HorizonYears: 20})
	assert.Equal(t, "Monthly: 10000, annual rate: 5.0%, years: 20 -> completed", got)
}

func TestStore_RecordNewestFirst(t *testing.T) {
	s := NewStore(10)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first := s.Record(req(1))
	second := s.Record(req(2))

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, fixed, first.CreatedAt)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestStore_CapacityDropsOldest(t *testing.T) {
	s := NewStore(3)
	for i := 1; i <= 5; i++ {
		s.Record(req(float64(i)))
	}

	assert.Equal(t, 3, s.Len())
	entries := s.Entries()
	assert.Equal(t, 5.0, entries[0].Request.PeriodicContribution)
	assert.Equal(t, 3.0, entries[2].Request.PeriodicContribution)
}

func TestStore_EntriesIsACopy(t *testing.T) {
	s := NewStore(2)
	s.Record(req(1))

	entries := s.Entries()
	entries[0].Summary = "mutated"

	assert.NotEqual(t, "mutated", s.Entries()[0].Summary)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(0)
	assert.Equal(t, DefaultCapacity, s.Capacity())

	s.Record(req(1))
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Entries())
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s := NewStore(1000)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Record(req(float64(i)))
			_ = s.Entries()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, s.Len())
}
