package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// "b" is now least recently used
	c.Put("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictCallback(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRU[string, int](1, cache.WithEvictCallback(func(key string, _ int) {
		evicted = append(evicted, key)
	}))

	c.Put("a", 1)
	c.Put("a", 2) // replace, no callback
	c.Put("b", 3) // evicts a
	c.Remove("b")
	c.Put("c", 4)
	c.Clear()

	assert.Equal(t, []string{"a", "b", "c"}, evicted)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	var evicted int
	c := cache.NewLRU[string, int](4,
		cache.WithTTL[string, int](20*time.Millisecond),
		cache.WithEvictCallback(func(string, int) { evicted++ }),
	)
	c.Put("a", 1)

	_, ok := c.Get("a")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_SlidingExpiry(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](4,
		cache.WithTTL[string, int](60*time.Millisecond),
		cache.WithSlidingExpiry[string, int](),
	)
	c.Put("a", 1)

	for range 5 {
		time.Sleep(20 * time.Millisecond)
		_, ok := c.Get("a")
		require.True(t, ok, "entry read within the ttl must stay")
	}

	time.Sleep(120 * time.Millisecond)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRU_PanicsOnInvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](50)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				c.Put(n*100+j, j)
				c.Get(n*100 + j)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}
