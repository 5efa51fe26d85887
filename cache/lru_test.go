package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts "a"

	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, c.Len())
}

func TestCache_GetRefreshesRecency(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a") // "b" is now the LRU entry
	require.True(t, ok)
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := time.Now()
	c := New(4, 5*time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("a", 1)
	clock = clock.Add(4 * time.Minute)
	_, ok := c.Get("a")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry past its TTL")
	assert.Equal(t, 0, c.Len(), "expired entry removed on read")
}

func TestCache_SetReplacesAndExtends(t *testing.T) {
	clock := time.Now()
	c := New(4, 5*time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("a", 1)
	clock = clock.Add(4 * time.Minute)
	c.Set("a", 2) // fresh TTL from now

	clock = clock.Add(4 * time.Minute)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := New(4, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("missing") // no-op

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(32, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%40)
				c.Set(key, g)
				c.Get(key)
				if i%7 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 32)
}
