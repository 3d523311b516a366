package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shifttrack/internal/config"
	"shifttrack/internal/shift"
)

// Store manages shift and rate persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.DatabasePath
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// CreateShift inserts a new shift record. A missing ID is assigned; the
// stored record is returned with its timestamps populated.
func (s *Store) CreateShift(ctx context.Context, record shift.Record) (*shift.Record, error) {
	if strings.TrimSpace(record.ID) == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO shifts (
            id, owner_id, clock_in, clock_out, lunch_in, lunch_out,
            position, notes, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		nullableString(record.OwnerID),
		nullableTime(record.ClockIn),
		nullableTime(record.ClockOut),
		nullableTime(record.LunchIn),
		nullableTime(record.LunchOut),
		nullableString(record.Position),
		nullableString(record.Notes),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert shift: %w", err)
	}

	return s.GetShift(ctx, record.ID)
}

// GetShift fetches a shift by identifier.
func (s *Store) GetShift(ctx context.Context, id string) (*shift.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id)
	record, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return record, nil
}

// UpdateShift persists changes to an existing shift.
func (s *Store) UpdateShift(ctx context.Context, record *shift.Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	record.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE shifts
         SET owner_id = ?, clock_in = ?, clock_out = ?, lunch_in = ?, lunch_out = ?,
             position = ?, notes = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(record.OwnerID),
		nullableTime(record.ClockIn),
		nullableTime(record.ClockOut),
		nullableTime(record.LunchIn),
		nullableTime(record.LunchOut),
		nullableString(record.Position),
		nullableString(record.Notes),
		record.UpdatedAt.Format(time.RFC3339Nano),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update shift: no row with id %s", record.ID)
	}
	return nil
}

// ListShifts returns all shifts ordered by clock-in time.
func (s *Store) ListShifts(ctx context.Context) ([]shift.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY clock_in, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListShiftsBetween returns shifts whose clock-in falls inside [start, end],
// ordered by clock-in time.
func (s *Store) ListShiftsBetween(ctx context.Context, start, end time.Time) ([]shift.Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+shiftColumns+` FROM shifts
         WHERE clock_in IS NOT NULL AND clock_in >= ? AND clock_in <= ?
         ORDER BY clock_in, created_at`,
		start.UTC().Format(time.RFC3339Nano),
		end.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("list shifts between: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// DeleteShift removes a shift by identifier.
func (s *Store) DeleteShift(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete shift: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// CountShifts returns the number of stored shifts.
func (s *Store) CountShifts(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM shifts`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count shifts: %w", err)
	}
	return count, nil
}

// UpsertRate inserts a rate or replaces the existing rate for the same
// position. Position matching ignores case and surrounding whitespace.
func (s *Store) UpsertRate(ctx context.Context, rate shift.Rate) (*shift.Rate, error) {
	if strings.TrimSpace(rate.Position) == "" {
		return nil, errors.New("rate position is empty")
	}
	if strings.TrimSpace(rate.ID) == "" {
		rate.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO rates (id, owner_id, position, amount, kind, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (LOWER(TRIM(position)))
         DO UPDATE SET amount = excluded.amount, kind = excluded.kind, position = excluded.position`,
		rate.ID,
		nullableString(rate.OwnerID),
		rate.Position,
		rate.Amount,
		string(rate.Kind),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert rate: %w", err)
	}

	return s.FindRateByPosition(ctx, rate.Position)
}

// GetRate fetches a rate by identifier.
func (s *Store) GetRate(ctx context.Context, id string) (*shift.Rate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rateColumns+` FROM rates WHERE id = ?`, id)
	rate, err := scanRate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rate: %w", err)
	}
	return rate, nil
}

// FindRateByPosition returns the rate for a position label, matched loosely.
func (s *Store) FindRateByPosition(ctx context.Context, position string) (*shift.Rate, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+rateColumns+` FROM rates WHERE LOWER(TRIM(position)) = LOWER(TRIM(?)) LIMIT 1`,
		position,
	)
	rate, err := scanRate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find rate by position: %w", err)
	}
	return rate, nil
}

// ListRates returns all rates ordered by position.
func (s *Store) ListRates(ctx context.Context) ([]shift.Rate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+rateColumns+` FROM rates ORDER BY LOWER(position)`)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()

	var rates []shift.Rate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, *rate)
	}
	return rates, rows.Err()
}

// DeleteRate removes a rate by identifier.
func (s *Store) DeleteRate(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rates WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete rate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// DatabaseHealth reports diagnostic information about the database file.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesExist      bool
	TotalShifts      int
	IntegrityCheck   bool
	Error            string
}

// CheckHealth returns diagnostic information about the shift database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping database: %w", err)
	}
	health.DatabaseReadable = true

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'shifts'")
	if err := row.Scan(&tableName); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
	} else {
		health.TablesExist = true
	}

	if health.TablesExist {
		row = s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM shifts")
		if err := row.Scan(&health.TotalShifts); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count shifts: %w", err)
		}
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

const shiftColumns = "id, owner_id, clock_in, clock_out, lunch_in, lunch_out, position, notes, created_at, updated_at"

const rateColumns = "id, owner_id, position, amount, kind, created_at"

func collectShifts(rows *sql.Rows) ([]shift.Record, error) {
	var records []shift.Record
	for rows.Next() {
		record, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanShift(scanner interface{ Scan(dest ...any) error }) (*shift.Record, error) {
	var (
		id          string
		ownerID     sql.NullString
		clockInRaw  sql.NullString
		clockOutRaw sql.NullString
		lunchInRaw  sql.NullString
		lunchOutRaw sql.NullString
		position    sql.NullString
		notes       sql.NullString
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&clockInRaw,
		&clockOutRaw,
		&lunchInRaw,
		&lunchOutRaw,
		&position,
		&notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &shift.Record{
		ID:       id,
		OwnerID:  ownerID.String,
		Position: position.String,
		Notes:    notes.String,
	}
	record.ClockIn = parseNullableTime(clockInRaw)
	record.ClockOut = parseNullableTime(clockOutRaw)
	record.LunchIn = parseNullableTime(lunchInRaw)
	record.LunchOut = parseNullableTime(lunchOutRaw)

	if created, err := parseTimeString(createdRaw.String); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func scanRate(scanner interface{ Scan(dest ...any) error }) (*shift.Rate, error) {
	var (
		id         string
		ownerID    sql.NullString
		position   string
		amount     float64
		kind       string
		createdRaw sql.NullString
	)

	if err := scanner.Scan(&id, &ownerID, &position, &amount, &kind, &createdRaw); err != nil {
		return nil, err
	}

	rate := &shift.Rate{
		ID:       id,
		OwnerID:  ownerID.String,
		Position: position,
		Amount:   amount,
		Kind:     shift.ParseRateKind(kind),
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		rate.CreatedAt = created
	}
	return rate, nil
}

func parseNullableTime(value sql.NullString) *time.Time {
	if !value.Valid {
		return nil
	}
	parsed, err := parseTimeString(value.String)
	if err != nil {
		return nil
	}
	return &parsed
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
