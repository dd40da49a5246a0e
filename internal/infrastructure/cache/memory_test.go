package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, found := c.Get("shipping:cities")
	assert.False(t, found)

	c.Set("shipping:cities", []string{"Luque"}, 0)
	v, found := c.Get("shipping:cities")
	assert.True(t, found)
	assert.Equal(t, []string{"Luque"}, v)

	c.Delete("shipping:cities")
	_, found = c.Get("shipping:cities")
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("k", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)
}
