package proxy

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySupplierDrawsNothing(t *testing.T) {
	s, err := NewSupplier(context.Background(), nil, "https://shop.example")
	require.NoError(t, err)

	assert.Equal(t, "", s.Get())
}

func TestSupplierDrawsFromPool(t *testing.T) {
	s := &supplier{
		proxies: []string{"http://p1:8080", "http://p2:8080"},
		rand:    rand.New(rand.NewSource(1)),
	}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		proxyURL := s.Get()
		assert.Contains(t, []string{"http://p1:8080", "http://p2:8080"}, proxyURL)
		seen[proxyURL] = true
	}
	// uniform draws over 100 tries hit both endpoints
	assert.Len(t, seen, 2)
}
