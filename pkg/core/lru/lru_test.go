package lru_test

import (
	"testing"

	"github.com/Techcable/minecraft-mappings/pkg/core/lru"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario6FIFOEvictionAndReplace(t *testing.T) {
	c := lru.New[string, int](3)
	c.Insert("k1", 1)
	c.Insert("k2", 2)
	c.Insert("k3", 3)
	c.Insert("k4", 4)

	_, ok := c.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, []string{"k2", "k3", "k4"}, c.Keys())

	c.Insert("k3", 30)
	assert.Equal(t, []string{"k2", "k3", "k4"}, c.Keys())
	v, ok := c.Get("k3")
	require.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestInsertNPlus1EvictsOnlyFirst(t *testing.T) {
	const n = 5
	c := lru.New[int, int](n)
	for i := 0; i < n+1; i++ {
		c.Insert(i, i*i)
	}
	_, ok := c.Get(0)
	assert.False(t, ok)
	for i := 1; i <= n; i++ {
		v, ok := c.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*i, v)
	}
	assert.Equal(t, n, c.Len())
}

func TestReplaceNeverEvicts(t *testing.T) {
	c := lru.New[string, int](2)
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Insert("a", 100)
	assert.Equal(t, 2, c.Len())
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 100, v)
	v, ok = c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestGetDoesNotReorderOrEvict(t *testing.T) {
	c := lru.New[int, int](2)
	c.Insert(1, 1)
	c.Insert(2, 2)
	c.Get(1)
	c.Insert(3, 3)
	_, ok := c.Get(1)
	assert.False(t, ok, "FIFO eviction must ignore access recency")
	assert.Equal(t, []int{2, 3}, c.Keys())
}
