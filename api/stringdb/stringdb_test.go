package stringdb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gene_weaver_go/api/fetch"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := fetch.NewGetter(log)
	g.Retries = 0
	g.Backoff = time.Millisecond
	return NewClient(srv.URL, g, log)
}

func TestPartners_ExcludesSelfAndDuplicates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/json/network", r.URL.Path)
		assert.Equal(t, "GAL4", r.URL.Query().Get("identifiers"))
		assert.Equal(t, "4932", r.URL.Query().Get("species"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `[
			{"preferredName_A":"GAL4","preferredName_B":"GAL80","score":0.99},
			{"preferredName_A":"GAL80","preferredName_B":"Gal4","score":0.99},
			{"preferredName_A":"GAL4","preferredName_B":"GAL11","score":0.95},
			{"preferredName_A":"GAL11","preferredName_B":"GAL80","score":0.9}]`)
	})
	res := c.Partners(context.Background(), "GAL4", "4932")
	require.True(t, res.Ok(), res.Reason)
	assert.Equal(t, []string{"GAL11", "GAL80"}, res.Value)
}

func TestPartners_FailuresAreSwallowed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	res := c.Partners(context.Background(), "JUN", "9606")
	assert.Equal(t, fetch.Empty, res.Status)
	assert.Empty(t, res.ValueOr(nil))

	assert.Equal(t, fetch.Empty, c.Partners(context.Background(), "", "9606").Status)
}

func TestPartners_CacheKeyedByLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("limit") == "1" {
			_, _ = io.WriteString(w, `[{"preferredName_A":"JUN","preferredName_B":"FOS","score":0.99}]`)
			return
		}
		_, _ = io.WriteString(w, `[
			{"preferredName_A":"JUN","preferredName_B":"FOS","score":0.99},
			{"preferredName_A":"JUN","preferredName_B":"ATF2","score":0.98}]`)
	})
	c.Getter.Cache = fetch.DiskCache{Dir: t.TempDir(), TTL: time.Hour}
	ctx := context.Background()

	res := c.Partners(ctx, "JUN", "9606")
	require.True(t, res.Ok(), res.Reason)
	assert.Equal(t, []string{"ATF2", "FOS"}, res.Value)

	c.Limit = 1
	res = c.Partners(ctx, "JUN", "9606")
	require.True(t, res.Ok(), res.Reason)
	assert.Equal(t, []string{"FOS"}, res.Value)

	c.Limit = DefaultLimit
	res = c.Partners(ctx, "JUN", "9606")
	require.True(t, res.Ok(), res.Reason)
	assert.Equal(t, []string{"ATF2", "FOS"}, res.Value)
	assert.EqualValues(t, 2, calls.Load())
}
