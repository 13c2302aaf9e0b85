package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/config"
	"github.com/pders01/pickr/internal/validation"
)

var languages = []combobox.Option{
	{Value: "javascript", Label: "JavaScript"},
	{Value: "python", Label: "Python"},
	{Value: "typescript", Label: "TypeScript"},
	{Value: "react", Label: "React"},
	{Value: "next", Label: "Next.js"},
	{Value: "nodejs", Label: "Node.js"},
}

func values(options []combobox.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Value
	}
	return out
}

func TestSimulated_FiltersBySubstring(t *testing.T) {
	s := NewSimulated(languages, 0)

	got, err := s.Lookup(context.Background(), "SCRIPT")
	require.NoError(t, err)
	assert.Equal(t, []string{"javascript", "typescript"}, values(got))

	got, err = s.Lookup(context.Background(), ".js")
	require.NoError(t, err)
	assert.Equal(t, []string{"next", "nodejs"}, values(got))

	got, err = s.Lookup(context.Background(), "cobol")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimulated_HonoursCancellation(t *testing.T) {
	s := NewSimulated(languages, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.Lookup(ctx, "py")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSimulated_WaitsOutLatency(t *testing.T) {
	s := NewSimulated(languages, 20*time.Millisecond)

	start := time.Now()
	got, err := s.Lookup(context.Background(), "py")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, []string{"python"}, values(got))
}

func TestSimulated_SetOptions(t *testing.T) {
	s := NewSimulated(languages, 0)
	require.NoError(t, s.SetOptions(append(languages, combobox.Option{Value: "svelte", Label: "Svelte"})))

	got, err := s.Lookup(context.Background(), "svel")
	require.NoError(t, err)
	assert.Equal(t, []string{"svelte"}, values(got))

	n, err := s.DocCount()
	require.NoError(t, err)
	assert.Equal(t, len(languages)+1, n)
}

func TestIndex_MemOnly(t *testing.T) {
	idx, err := NewMemIndex(10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	require.NoError(t, idx.SetOptions(languages))
	n, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, len(languages), n)

	got, err := idx.Lookup(context.Background(), "pyt")
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, values(got))
	assert.Equal(t, "Python", got[0].Label)

	got, err = idx.Lookup(context.Background(), "next")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "next", got[0].Value)
	assert.Equal(t, "Next.js", got[0].Label)

	got, err = idx.Lookup(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex_SetOptionsRemovesStaleDocs(t *testing.T) {
	idx, err := NewMemIndex(10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	require.NoError(t, idx.SetOptions(languages))
	require.NoError(t, idx.SetOptions(languages[:2]))

	n, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := idx.Lookup(context.Background(), "react")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex_AddAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.bleve")

	idx, err := OpenIndex(path, 0)
	require.NoError(t, err)
	require.NoError(t, idx.SetOptions(languages))
	require.NoError(t, idx.Add(combobox.Option{Value: "ruby-on-rails", Label: "Ruby on Rails"}))

	got, err := idx.Lookup(context.Background(), "rails")
	require.NoError(t, err)
	assert.Equal(t, []string{"ruby-on-rails"}, values(got))
	require.NoError(t, idx.Close())

	reopened, err := OpenIndex(path, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	n, err := reopened.DocCount()
	require.NoError(t, err)
	assert.Equal(t, len(languages)+1, n)
}

func TestIndex_RespectsLimit(t *testing.T) {
	idx, err := NewMemIndex(1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	require.NoError(t, idx.SetOptions(languages))

	got, err := idx.Lookup(context.Background(), "node next")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func permissive() *validation.URLValidator { return validation.NewPermissiveURLValidator() }

func TestHTTP_Lookup(t *testing.T) {
	var gotUA, gotQuery, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]combobox.Option{
			{Value: "python", Label: "Python"},
			{Value: "pytorch"},
			{Value: "  ", Label: "dropped"},
		})
	}))
	t.Cleanup(srv.Close)

	h, err := NewHTTP(srv.URL+"/options?lang=en", HTTPOptions{UserAgent: "pickr-test", Limit: 5, Validator: permissive()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	got, err := h.Lookup(context.Background(), "py thon")
	require.NoError(t, err)
	assert.Equal(t, []combobox.Option{
		{Value: "python", Label: "Python"},
		{Value: "pytorch", Label: "pytorch"},
	}, got)
	assert.Equal(t, "pickr-test", gotUA)
	assert.Equal(t, "py thon", gotQuery)
	assert.Equal(t, "5", gotLimit)
}

func TestHTTP_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	h, err := NewHTTP(srv.URL, HTTPOptions{Validator: permissive()})
	require.NoError(t, err)

	_, err = h.Lookup(context.Background(), "py")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestHTTP_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	t.Cleanup(srv.Close)

	h, err := NewHTTP(srv.URL, HTTPOptions{Validator: permissive()})
	require.NoError(t, err)

	_, err = h.Lookup(context.Background(), "py")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding lookup response")
}

func TestHTTP_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	h, err := NewHTTP(srv.URL, HTTPOptions{Validator: permissive()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := h.Lookup(ctx, "py")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("lookup did not return after cancellation")
	}
}

func TestHTTP_RateLimited(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	// One request per minute: the first goes through, the second waits.
	h, err := NewHTTP(srv.URL, HTTPOptions{Rate: 1.0 / 60, Validator: permissive()})
	require.NoError(t, err)

	_, err = h.Lookup(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = h.Lookup(ctx, "b")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTP_RejectsBadEndpoint(t *testing.T) {
	_, err := NewHTTP("http://127.0.0.1:9/options", HTTPOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrLocalhost)

	_, err = NewHTTP("ftp://lookup.dev", HTTPOptions{})
	assert.Error(t, err)
}

func TestNew_PicksBackend(t *testing.T) {
	cfg := config.TestConfig()

	cfg.Search.Backend = config.BackendSimulated
	src, err := New(cfg, languages)
	require.NoError(t, err)
	assert.IsType(t, &Simulated{}, src)

	cfg.Search.Backend = config.BackendIndex
	src, err = New(cfg, languages)
	require.NoError(t, err)
	require.IsType(t, &Index{}, src)
	n, err := src.(Stater).DocCount()
	require.NoError(t, err)
	assert.Equal(t, len(languages), n)
	require.NoError(t, src.Close())

	cfg.Search.Backend = config.BackendHTTP
	cfg.Search.RemoteURL = "http://localhost:8080/options"
	src, err = New(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTP{}, src)

	cfg.Search.AllowLocal = false
	_, err = New(cfg, nil)
	assert.Error(t, err)

	cfg.Search.Backend = "grpc"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestSourcesSatisfyLookupFunc(t *testing.T) {
	var _ combobox.LookupFunc = NewSimulated(nil, 0).Lookup
	var _ CatalogListener = &Simulated{}
	var _ CatalogListener = &Index{}
	var _ Stater = &Index{}
}
