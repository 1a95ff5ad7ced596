package calendar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPCalendar_HolidaysForYear(t *testing.T) {
	var requests int32
	var (
		mu      sync.Mutex
		gotPath string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		mu.Lock()
		gotPath = r.URL.Path
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2024-12-25","localName":"Juldagen","name":"Christmas Day"},
			{"date":"2024-12-26","localName":"","name":"St. Stephen's Day"},
			{"date":"bogus","localName":"Broken","name":"Broken"}
		]`)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	cal := NewHTTPCalendar(server.URL+"/api/v3/PublicHolidays/{year}/{country}", "SE", time.Hour, time.UTC, logger)

	holidays, err := cal.HolidaysForYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("HolidaysForYear() error = %v", err)
	}
	mu.Lock()
	path := gotPath
	mu.Unlock()
	if path != "/api/v3/PublicHolidays/2024/SE" {
		t.Errorf("request path = %q, want /api/v3/PublicHolidays/2024/SE", path)
	}
	if len(holidays) != 2 {
		t.Fatalf("HolidaysForYear() returned %d holidays, want 2", len(holidays))
	}
	if holidays[0].Name != "Juldagen" {
		t.Errorf("holidays[0].Name = %q, want local name Juldagen", holidays[0].Name)
	}
	if holidays[1].Name != "St. Stephen's Day" {
		t.Errorf("holidays[1].Name = %q, want English fallback name", holidays[1].Name)
	}

	// Second call is served from cache
	if _, err := cal.HolidaysForYear(context.Background(), 2024); err != nil {
		t.Fatalf("cached HolidaysForYear() error = %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("server received %d requests, want 1", n)
	}

	cal.ClearCache()
	if _, err := cal.HolidaysForYear(context.Background(), 2024); err != nil {
		t.Fatalf("HolidaysForYear() after ClearCache error = %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("server received %d requests after ClearCache, want 2", n)
	}
}

func TestHTTPCalendar_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cal := NewHTTPCalendar(server.URL+"/{year}/{country}", "SE", time.Hour, time.UTC, zap.NewNop())

	if _, err := cal.HolidaysForYear(context.Background(), 2024); err == nil {
		t.Error("HolidaysForYear() expected error for status 500, got nil")
	}
}

func TestHTTPCalendar_NoDataForYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cal := NewHTTPCalendar(server.URL+"/{year}/{country}", "XX", time.Hour, time.UTC, zap.NewNop())

	holidays, err := cal.HolidaysForYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("HolidaysForYear() error = %v", err)
	}
	if len(holidays) != 0 {
		t.Errorf("HolidaysForYear() returned %d holidays, want 0", len(holidays))
	}
}
