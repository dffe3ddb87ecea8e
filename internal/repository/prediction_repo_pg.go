package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medipred/internal/model"
	"medipred/pkg/pagination"
)

// MigrationPredictions creates the predictions table. It is safe to execute
// multiple times.
const MigrationPredictions = `
CREATE TABLE IF NOT EXISTS predictions (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    prediction_type TEXT NOT NULL,
    result          JSONB NOT NULL,
    form_data       JSONB NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_predictions_user_created
    ON predictions (user_id, created_at DESC);
`

// pgConn is the subset of *pgxpool.Pool the repository needs
type pgConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgPredictionRepo struct {
	db pgConn
}

// NewPGPredictionRepo creates a PostgreSQL-backed prediction repository
func NewPGPredictionRepo(pool *pgxpool.Pool) PredictionRepo {
	return &pgPredictionRepo{db: pool}
}

// MigratePG applies MigrationPredictions
func MigratePG(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, MigrationPredictions); err != nil {
		return fmt.Errorf("migrate predictions: %w", err)
	}
	return nil
}

const predictionColumns = `id, user_id, prediction_type, result, form_data, created_at, updated_at`

func (r *pgPredictionRepo) Create(ctx context.Context, record *model.PredictionRecord) (string, error) {
	result, err := json.Marshal(record.Result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	formData, err := json.Marshal(record.FormData)
	if err != nil {
		return "", fmt.Errorf("marshal form data: %w", err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.UpdatedAt = record.CreatedAt

	const query = `INSERT INTO predictions (` + predictionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.Exec(ctx, query,
		record.ID, record.UserID, string(record.PredictionType), result, formData,
		record.CreatedAt, record.UpdatedAt,
	); err != nil {
		return "", fmt.Errorf("insert prediction: %w", err)
	}
	return record.ID, nil
}

func (r *pgPredictionRepo) ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*model.PredictionRecord, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM predictions WHERE user_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count predictions: %w", err)
	}

	const query = `SELECT ` + predictionColumns + ` FROM predictions
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	records := []*model.PredictionRecord{}
	for rows.Next() {
		record, err := scanPrediction(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list predictions: %w", err)
	}
	return records, total, nil
}

func (r *pgPredictionRepo) GetByID(ctx context.Context, id string) (*model.PredictionRecord, error) {
	const query = `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`
	record, err := scanPrediction(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *pgPredictionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM predictions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete prediction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgPredictionRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM predictions WHERE user_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete predictions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgPredictionRepo) SummaryByOwner(ctx context.Context, ownerID string) ([]model.ConditionSummary, error) {
	const query = `SELECT prediction_type,
       count(*),
       count(*) FILTER (WHERE (result->>'prediction')::boolean),
       max(created_at)
FROM predictions
WHERE user_id = $1
GROUP BY prediction_type
ORDER BY prediction_type`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("summarize predictions: %w", err)
	}
	defer rows.Close()

	summaries := []model.ConditionSummary{}
	for rows.Next() {
		var s model.ConditionSummary
		var condition string
		if err := rows.Scan(&condition, &s.Total, &s.Elevated, &s.LastAssessedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.PredictionType = model.ConditionType(condition)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize predictions: %w", err)
	}
	return summaries, nil
}

func scanPrediction(row pgx.Row) (*model.PredictionRecord, error) {
	var (
		record    model.PredictionRecord
		condition string
		result    []byte
		formData  []byte
	)
	if err := row.Scan(&record.ID, &record.UserID, &condition, &result, &formData, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan prediction: %w", err)
	}
	record.PredictionType = model.ConditionType(condition)
	if err := json.Unmarshal(result, &record.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	if err := json.Unmarshal(formData, &record.FormData); err != nil {
		return nil, fmt.Errorf("unmarshal form data: %w", err)
	}
	return &record, nil
}
