package deezer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/llehouerou/mixera/internal/catalog"
)

const okPayload = `{"data": [{
	"title": "Get Lucky",
	"artist": {"name": "Daft Punk"},
	"album": {"cover_medium": "http://img/medium.jpg", "cover_xl": "http://img/xl.jpg"},
	"preview": "http://cdn/preview.mp3"
}]}`

var testEntry = catalog.Entry{ID: "001", Title: "Get Lucky", Artist: "Daft Punk", Year: 2013}

func TestResolve(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(okPayload))
	}))
	defer srv.Close()

	c := NewWithEndpoints(srv.URL)
	track, err := c.Resolve(context.Background(), testEntry)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if gotQuery != "Daft Punk Get Lucky" {
		t.Errorf("query = %q, want %q", gotQuery, "Daft Punk Get Lucky")
	}
	if track.Preview != "http://cdn/preview.mp3" {
		t.Errorf("Preview = %q", track.Preview)
	}
	if track.Cover != "http://img/xl.jpg" {
		t.Errorf("Cover = %q, want xl variant preferred", track.Cover)
	}
	// Entry identity is carried through, not taken from the payload.
	if track.ID != "001" || track.Year != 2013 {
		t.Errorf("ID/Year = %s/%d, want 001/2013", track.ID, track.Year)
	}
}

func TestResolve_FallsBackToNextEndpoint(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(okPayload))
	}))
	defer good.Close()

	c := NewWithEndpoints(bad.URL, good.URL)
	track, err := c.Resolve(context.Background(), testEntry)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if track.Preview == "" {
		t.Error("fallback endpoint result missing preview")
	}
}

func TestResolve_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := NewWithEndpoints(srv.URL)
	_, err := c.Resolve(context.Background(), testEntry)
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("Resolve() error = %v, want ErrNoResult", err)
	}
}

func TestResolve_NoPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [{"title": "x", "artist": {"name": "y"}, "album": {}, "preview": ""}]}`))
	}))
	defer srv.Close()

	c := NewWithEndpoints(srv.URL)
	_, err := c.Resolve(context.Background(), testEntry)
	if !errors.Is(err, ErrNoPreview) {
		t.Errorf("Resolve() error = %v, want ErrNoPreview", err)
	}
}

func TestResolve_CanceledContextStopsChain(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewWithEndpoints(srv.URL, srv.URL, srv.URL)
	if _, err := c.Resolve(ctx, testEntry); err == nil {
		t.Fatal("Resolve() with canceled context should fail")
	}
	if calls > 1 {
		t.Errorf("chain continued after cancellation: %d calls", calls)
	}
}
