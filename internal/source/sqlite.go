package source

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/username/tidrapport/internal/model"
	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// datePattern matches anything shaped like YYYY-MM-DD
const datePattern = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]"

// SQLite serves clients and entries from an SQLite snapshot with the tables
// clients(id, name, color) and time_entries(id, client_id, date, hours, description).
// It only issues SELECT statements.
type SQLite struct {
	db     *sql.DB
	loc    *time.Location
	logger *zap.Logger
}

// NewSQLite opens the database at path
func NewSQLite(path string, loc *time.Location, logger *zap.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if loc == nil {
		loc = time.Local
	}

	logger.Info("SQLite source opened", zap.String("path", path))

	return &SQLite{db: db, loc: loc, logger: logger}, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// dateColumn normalizes the date column to YYYY-MM-DD. The driver returns
// time.Time for DATE-typed columns holding a parsable value.
func dateColumn(v any) string {
	switch d := v.(type) {
	case time.Time:
		return dateutil.FormatDate(d)
	case string:
		return d
	case []byte:
		return string(d)
	case nil:
		return ""
	default:
		return fmt.Sprint(d)
	}
}

// Clients returns all clients in insertion order
func (s *SQLite) Clients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM clients ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clients []model.Client
	for rows.Next() {
		var (
			id, name string
			color    sql.NullString
		)
		if err := rows.Scan(&id, &name, &color); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, model.Client{
			ID:    model.FlexibleID(id),
			Name:  name,
			Color: color.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}

	return clients, nil
}

// EntriesBetween returns entries dated from..to inclusive, ordered by date.
// Rows whose date is not shaped like YYYY-MM-DD are passed through so callers
// can report them, and a NULL hours value is returned as NaN. A NULL client
// becomes an empty client ID, which counts as an unknown client.
func (s *SQLite) EntriesBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	query := `
		SELECT id, client_id, date, hours, description
		FROM time_entries
		WHERE (date >= ? AND date <= ?) OR date IS NULL OR date NOT GLOB ?
		ORDER BY date, rowid
	`

	rows, err := s.db.QueryContext(ctx, query,
		dateutil.FormatDate(from.In(s.loc)),
		dateutil.FormatDate(to.In(s.loc)),
		datePattern,
	)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.TimeEntry
	for rows.Next() {
		var (
			e           model.TimeEntry
			id, client  sql.NullString
			date        any
			hours       sql.NullFloat64
			description sql.NullString
		)
		if err := rows.Scan(&id, &client, &date, &hours, &description); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		// NULL ids map to "" like null JSON ids do
		e.ID = model.FlexibleID(id.String)
		e.ClientID = model.FlexibleID(client.String)
		e.Date = dateColumn(date)
		e.Hours = math.NaN()
		if hours.Valid {
			e.Hours = hours.Float64
		}
		if description.Valid {
			text := description.String
			e.Description = &text
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	s.logger.Debug("Entries selected",
		zap.String("from", dateutil.FormatDate(from)),
		zap.String("to", dateutil.FormatDate(to)),
		zap.Int("count", len(entries)))

	return entries, nil
}
