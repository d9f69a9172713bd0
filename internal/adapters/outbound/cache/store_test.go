package cache_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pycoding/pycoding/internal/adapters/outbound/cache"
	"github.com/pycoding/pycoding/internal/domain"
)

func report(file string) *domain.LintReport {
	return &domain.LintReport{
		File:            file,
		Linter:          "flake8",
		LinterAvailable: true,
		Diagnostics: []domain.MergedDiagnostic{
			{Severity: domain.SeverityWarning, Line: 1, Message: "unused import", Indicator: 11, Count: 1},
		},
		Summary: domain.Summary{Warning: 1},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	store, err := cache.New(8)
	require.NoError(t, err)

	store.Put("k1", report("a.py"))
	got, ok := store.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "a.py", got.File)
	assert.Equal(t, 1, got.Summary.Warning)
	require.Len(t, got.Diagnostics, 1)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := cache.New(8)
	require.NoError(t, err)

	got, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_CopiesReports(t *testing.T) {
	store, err := cache.New(8)
	require.NoError(t, err)

	r := report("a.py")
	store.Put("k1", r)
	r.Diagnostics[0].Message = "changed"

	got, _ := store.Get("k1")
	assert.Equal(t, "unused import", got.Diagnostics[0].Message)

	got.Cached = true
	again, _ := store.Get("k1")
	assert.False(t, again.Cached)
}

func TestStore_Invalidate(t *testing.T) {
	store, err := cache.New(8)
	require.NoError(t, err)

	store.Put("k1", report("a.py"))
	store.Put("k2", report("a.py"))
	store.Put("k3", report("b.py"))

	store.Invalidate("a.py")
	_, ok := store.Get("k1")
	assert.False(t, ok)
	_, ok = store.Get("k2")
	assert.False(t, ok)
	_, ok = store.Get("k3")
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())

	store.Invalidate("never-seen.py")
}

func TestStore_EvictsOldest(t *testing.T) {
	store, err := cache.New(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		store.Put(fmt.Sprintf("k%d", i), report(fmt.Sprintf("%d.py", i)))
	}
	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("k0")
	assert.False(t, ok)
	_, ok = store.Get("k2")
	assert.True(t, ok)
}

func TestStore_DefaultSize(t *testing.T) {
	store, err := cache.New(0)
	require.NoError(t, err)
	store.Put("k", nil)
	assert.Equal(t, 0, store.Len())
}
