package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph/internal/report"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// runStoreContract exercises the behavior every ReportStore must share.
func runStoreContract(t *testing.T, s ReportStore) {
	t.Helper()
	ctx := context.Background()

	r1 := &report.Report{RunID: "run-1", GeneratedAt: time.Now().UTC(), TotalIntents: 3}
	r2 := &report.Report{RunID: "run-2", GeneratedAt: time.Now().UTC(), TotalIntents: 7}

	require.NoError(t, s.Save(ctx, r1))
	require.NoError(t, s.Save(ctx, r2))

	got, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalIntents)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"run-1", "run-2"}, ids)

	require.NoError(t, s.Delete(ctx, "run-1"))
	_, err = s.Load(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	ids, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-2"}, ids)
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestRedisStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	runStoreContract(t, NewRedisStoreFromClient(client))
}

func TestRedisStore_TTLPrunesIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, WithTTL(time.Minute), WithPrefix("test:report:"))

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &report.Report{RunID: "short-lived"}))

	mr.FastForward(2 * time.Minute)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = s.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
