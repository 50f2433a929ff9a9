package store

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceFetchStoresData(t *testing.T) {
	res := NewResource("projects", func(ctx context.Context, params url.Values) ([]string, error) {
		return []string{"alpha", "beta"}, nil
	})

	_, ok := res.Data()
	assert.False(t, ok, "no data before the first fetch")

	data, err := res.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, data)

	stored, ok := res.Data()
	require.True(t, ok)
	assert.Equal(t, data, stored)
	assert.NoError(t, res.Err())
	assert.False(t, res.Loading())
}

func TestResourceFetchStoresError(t *testing.T) {
	fetchErr := errors.New("backend down")
	res := NewResource("projects", func(ctx context.Context, params url.Values) (int, error) {
		return 0, fetchErr
	})

	_, err := res.Fetch(context.Background(), nil)
	require.ErrorIs(t, err, fetchErr)
	assert.ErrorIs(t, res.Err(), fetchErr)
	assert.False(t, res.Loading(), "the loading flag clears on failure too")

	_, ok := res.Data()
	assert.False(t, ok, "a failed fetch stores no data")
}

func TestResourceFetchClearsPreviousError(t *testing.T) {
	var fail bool
	res := NewResource("projects", func(ctx context.Context, params url.Values) (string, error) {
		if fail {
			return "", errors.New("boom")
		}
		return "ok", nil
	})

	fail = true
	_, err := res.Fetch(context.Background(), nil)
	require.Error(t, err)

	fail = false
	_, err = res.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, res.Err())
}

func TestResourceLoadingDuringFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	res := NewResource("projects", func(ctx context.Context, params url.Values) (string, error) {
		close(started)
		<-release
		return "done", nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = res.Fetch(context.Background(), nil)
	}()

	<-started
	assert.True(t, res.Loading())
	close(release)
	wg.Wait()
	assert.False(t, res.Loading())
}

func TestResourcePassesParams(t *testing.T) {
	var got url.Values
	res := NewResource("projects", func(ctx context.Context, params url.Values) (string, error) {
		got = params
		return "", nil
	})

	_, err := res.Fetch(context.Background(), url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "2", got.Get("page"))
}

func TestResourceSubscribe(t *testing.T) {
	res := NewResource("projects", func(ctx context.Context, params url.Values) (string, error) {
		return "ok", nil
	})

	ch, cancel := res.Subscribe()
	defer cancel()

	_, err := res.Fetch(context.Background(), nil)
	require.NoError(t, err)

	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification after fetch")
	}
}
