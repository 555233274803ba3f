package main

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/repository/memstore"
)

// trackedStores swaps the store opener for one backed by memstore and
// reports whether its close func ran.
func trackedStores(t *testing.T) *bool {
	t.Helper()
	closed := new(bool)
	orig := storeOpener
	storeOpener = func(context.Context, config.Config, hclog.Logger) (stores, error) {
		st := memstore.New()
		return stores{
			movies:    st.Movies(),
			showtimes: st.Showtimes(),
			tickets:   st.Tickets(),
			ping:      st,
			close:     func() error { *closed = true; return nil },
		}, nil
	}
	t.Cleanup(func() { storeOpener = orig })
	return closed
}

func testConfig(t *testing.T, port string) config.Config {
	mr := miniredis.RunT(t)
	return config.Config{
		Port:  port,
		Store: config.StoreMemory,
		Redis: config.RedisConfig{Addr: mr.Addr()},
	}
}

func TestRunReleasesStoreWhenListenFails(t *testing.T) {
	closed := trackedStores(t)

	err := run(context.Background(), testConfig(t, "-1"), hclog.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve :-1")
	assert.True(t, *closed)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	closed := trackedStores(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, run(ctx, testConfig(t, "0"), hclog.NewNullLogger()))
	assert.True(t, *closed)
}

func TestRunReportsStoreFailure(t *testing.T) {
	orig := storeOpener
	storeOpener = func(context.Context, config.Config, hclog.Logger) (stores, error) {
		return stores{}, errors.New("dial tcp: refused")
	}
	t.Cleanup(func() { storeOpener = orig })

	err := run(context.Background(), config.Config{Store: config.StoreMySQL}, hclog.NewNullLogger())
	require.Error(t, err)
	assert.Equal(t, "open mysql store: dial tcp: refused", err.Error())
}
