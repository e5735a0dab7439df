package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskcalc/internal/adapter"
)

func TestRegistryUnknownCalculator(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil, 0)
	_, err := r.get("missing")
	require.ErrorIs(t, err, ErrUnknownCalculator)
	require.ErrorIs(t, r.Close("missing"), ErrUnknownCalculator)

	c, err := r.get("")
	require.NoError(t, err)
	require.Equal(t, DefaultID, c.id)
}

func TestRegistryLimit(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil, 3)
	_, err := r.Create()
	require.NoError(t, err)
	_, err = r.Create()
	require.NoError(t, err)
	_, err = r.Create()
	require.ErrorIs(t, err, ErrTooManyCalculators)
	require.Len(t, r.IDs(), 3)
}

func TestRegistryConcurrentPresses(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil, 0)
	c, err := r.get(DefaultID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.do(func(in *adapter.InputAdapter) { in.Press("1") })
		}()
	}
	wg.Wait()
	require.Equal(t, "1,111,111,111", c.do(nil).Current)
}
