package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	answers := map[string]string{"Who is mentioned?": "Dr. Chen"}
	err := c.Set(ctx, "fp1", answers)
	assert.NoError(t, err)

	retrieved, err := c.Get(ctx, "fp1")
	assert.NoError(t, err)
	assert.Equal(t, answers, retrieved)
}

func TestMemoryCache_MissReturnsNilNil(t *testing.T) {
	c := NewMemoryCache()

	retrieved, err := c.Get(context.Background(), "absent")
	assert.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	original := map[string]string{"Q?": "A"}
	c.Set(ctx, "fp", original)

	// Mutating either side must not leak into the store.
	original["Q?"] = "mutated"
	first, _ := c.Get(ctx, "fp")
	first["Q?"] = "also mutated"

	second, _ := c.Get(ctx, "fp")
	assert.Equal(t, "A", second["Q?"])
}

func TestMemoryCache_NoEviction(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		c.Set(ctx, string(rune('a'+i%26))+string(rune('0'+i/26)), map[string]string{"Q?": "A"})
	}

	assert.Equal(t, 100, c.Len(), "entries live for the process lifetime")
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			fp := string(rune('a' + n))
			c.Set(ctx, fp, map[string]string{"Q?": "A"})
			c.Get(ctx, fp)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, c.Len())
}
