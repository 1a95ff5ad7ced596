package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

const sampleExport = `{
  "clients": [
    {"id": "a", "name": "Acme AB", "color": "#ff0000"},
    {"id": 7, "name": "Byrån", "color": "#00ff00"}
  ],
  "time_entries": [
    {"id": 3, "client_id": 7, "date": "2024-02-20", "hours": 3},
    {"id": 1, "client_id": "a", "date": "2024-02-12", "hours": 2, "description": "Planning"},
    {"id": 2, "client_id": "a", "date": "2024-02-14", "hours": 1.5},
    {"id": 4, "client_id": "a", "date": "2024-03-01", "hours": 4},
    {"id": 5, "client_id": "a", "date": "someday", "hours": 1}
  ]
}`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write export: %v", err)
	}
	return path
}

func TestFile_Clients(t *testing.T) {
	src := NewFile(writeExport(t, sampleExport), time.UTC, zap.NewNop())

	clients, err := src.Clients(context.Background())
	if err != nil {
		t.Fatalf("Clients() error = %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("Clients() = %d, want 2", len(clients))
	}
	if clients[0].ID != "a" || clients[1].ID != "7" {
		t.Errorf("client IDs = %q, %q, want a, 7", clients[0].ID, clients[1].ID)
	}

	// Callers must not be able to mutate the loaded data.
	clients[0].Name = "changed"
	again, _ := src.Clients(context.Background())
	if again[0].Name != "Acme AB" {
		t.Errorf("Clients() returned shared slice")
	}
}

func TestFile_EntriesBetween(t *testing.T) {
	src := NewFile(writeExport(t, sampleExport), time.UTC, zap.NewNop())

	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantIDs []string
	}{
		{
			name:    "whole february",
			from:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			to:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			wantIDs: []string{"1", "2", "3", "5"},
		},
		{
			name:    "single day with time of day",
			from:    time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC),
			to:      time.Date(2024, 2, 14, 8, 0, 0, 0, time.UTC),
			wantIDs: []string{"2", "5"},
		},
		{
			name:    "inverted range",
			from:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			to:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantIDs: []string{"5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := src.EntriesBetween(context.Background(), tt.from, tt.to)
			if err != nil {
				t.Fatalf("EntriesBetween() error = %v", err)
			}
			if len(entries) != len(tt.wantIDs) {
				t.Fatalf("EntriesBetween() = %d entries, want %d", len(entries), len(tt.wantIDs))
			}
			for i, e := range entries {
				if e.ID.String() != tt.wantIDs[i] {
					t.Errorf("entry %d = %s, want %s", i, e.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFile_Description(t *testing.T) {
	src := NewFile(writeExport(t, sampleExport), time.UTC, zap.NewNop())

	entries, err := src.EntriesBetween(context.Background(),
		time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EntriesBetween() error = %v", err)
	}
	if entries[0].DescriptionText() != "Planning" {
		t.Errorf("description = %q, want Planning", entries[0].DescriptionText())
	}
}

func TestFile_Errors(t *testing.T) {
	ctx := context.Background()

	missing := NewFile(filepath.Join(t.TempDir(), "nope.json"), time.UTC, zap.NewNop())
	if _, err := missing.Clients(ctx); err == nil {
		t.Error("Clients() on missing file: expected error")
	}

	broken := NewFile(writeExport(t, "{not json"), time.UTC, zap.NewNop())
	if _, err := broken.EntriesBetween(ctx, time.Now(), time.Now()); err == nil {
		t.Error("EntriesBetween() on broken file: expected error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	ok := NewFile(writeExport(t, sampleExport), time.UTC, zap.NewNop())
	if _, err := ok.Clients(cancelled); err == nil {
		t.Error("Clients() with cancelled context: expected error")
	}
}
