package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/google/uuid"
)

// SQLiteRecordRepository implements [models.RecordStore] on the records table.
type SQLiteRecordRepository struct {
	db *sql.DB
}

// NewSQLiteRecordRepository creates a new [SQLiteRecordRepository] with the given database connection
func NewSQLiteRecordRepository(db *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

// ParseID accepts uuid strings.
func (r *SQLiteRecordRepository) ParseID(id string) error {
	_, err := uuid.Parse(id)
	return err
}

// List retrieves every record ordered by sequence.
func (r *SQLiteRecordRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `
		SELECT id, name, position, level
		FROM records
		ORDER BY sequence ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Get retrieves a record by ID.
func (r *SQLiteRecordRepository) Get(ctx context.Context, id string) (*models.Record, bool, error) {
	query := `
		SELECT id, name, position, level
		FROM records
		WHERE id = ?
	`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query record: %w", err)
	}

	return &record, true, nil
}

// Create inserts a new record with a generated ID and sequence.
func (r *SQLiteRecordRepository) Create(ctx context.Context, fields models.RecordFields) (string, error) {
	var id string
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertRecord(ctx, tx, fields)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Replace rewrites all three fields.
//
// Matched counts the row with that id; modified counts it only when a value actually changed.
func (r *SQLiteRecordRepository) Replace(ctx context.Context, id string, fields models.RecordFields) (models.UpdateResult, error) {
	var result models.UpdateResult

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE id = ?", id).Scan(&result.MatchedCount); err != nil {
			return fmt.Errorf("failed to match record: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil
		}

		query := `
			UPDATE records
			SET name = ?, position = ?, level = ?, updated_at = ?
			WHERE id = ? AND (name IS NOT ? OR position IS NOT ? OR level IS NOT ?)
		`

		name, position, level := nullable(fields.Name), nullable(fields.Position), nullable(fields.Level)
		res, err := tx.ExecContext(ctx, query, name, position, level, time.Now().UTC(), id, name, position, level)
		if err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}

		if result.ModifiedCount, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		return nil
	})

	return result, err
}

// Delete removes a record by ID.
func (r *SQLiteRecordRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete record: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// DeleteMany removes all records whose id is listed, in a single statement.
func (r *SQLiteRecordRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// InsertMany inserts the batch in one transaction; either every row lands or none does.
func (r *SQLiteRecordRepository) InsertMany(ctx context.Context, batch []models.RecordFields) ([]models.Record, error) {
	records := make([]models.Record, 0, len(batch))

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, fields := range batch {
			id, err := insertRecord(ctx, tx, fields)
			if err != nil {
				return err
			}
			records = append(records, fields.WithID(id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Close closes the database handle.
func (r *SQLiteRecordRepository) Close(context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRecordRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, fields models.RecordFields) (string, error) {
	sequence, err := NextSequence(tx, "records")
	if err != nil {
		return "", fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	now := time.Now().UTC()

	query := `
		INSERT INTO records (id, sequence, name, position, level, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query, id, sequence, nullable(fields.Name), nullable(fields.Position), nullable(fields.Level), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}

	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		id                    string
		name, position, level sql.NullString
	)

	if err := row.Scan(&id, &name, &position, &level); err != nil {
		return models.Record{}, err
	}

	return models.Record{ID: id, Name: name.String, Position: position.String, Level: level.String}, nil
}

// nullable stores an absent (empty) field as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
