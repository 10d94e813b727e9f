package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound - клиент с таким client_id не зарегистрирован
	// или деактивирован.
	ErrClientNotFound = errors.New("api client not found")
)

// Store описывает операции над историей заполнений и сервисными клиентами.
type Store interface {
	CreateAPIClient(ctx context.Context, arg CreateAPIClientParams) (APIClient, error)
	GetAPIClientByClientID(ctx context.Context, clientID string) (APIClient, error)
	DeactivateAPIClient(ctx context.Context, clientID string) error

	CreateFillRecord(ctx context.Context, arg CreateFillRecordParams) (FillRecord, error)
	ListFillRecords(ctx context.Context, arg ListFillRecordsParams) ([]FillRecord, error)
	GetFillRecord(ctx context.Context, id int64) (FillRecord, error)
	GetAggregateStats(ctx context.Context) (AggregateStats, error)
}

// SQLStore - реализация Store поверх PostgreSQL.
type SQLStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const createAPIClient = `
INSERT INTO api_clients (client_id, secret_hash, name)
VALUES ($1, $2, $3)
RETURNING id, client_id, secret_hash, name, is_active, created_at, updated_at
`

func (s *SQLStore) CreateAPIClient(ctx context.Context, arg CreateAPIClientParams) (APIClient, error) {
	row := s.db.QueryRowContext(ctx, createAPIClient, arg.ClientID, arg.SecretHash, arg.Name)
	var c APIClient
	err := row.Scan(&c.ID, &c.ClientID, &c.SecretHash, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return APIClient{}, fmt.Errorf("create api client: %w", err)
	}
	return c, nil
}

const getAPIClientByClientID = `
SELECT id, client_id, secret_hash, name, is_active, created_at, updated_at
FROM api_clients
WHERE client_id = $1
`

func (s *SQLStore) GetAPIClientByClientID(ctx context.Context, clientID string) (APIClient, error) {
	row := s.db.QueryRowContext(ctx, getAPIClientByClientID, clientID)
	var c APIClient
	err := row.Scan(&c.ID, &c.ClientID, &c.SecretHash, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return APIClient{}, ErrClientNotFound
		}
		return APIClient{}, fmt.Errorf("get api client: %w", err)
	}
	return c, nil
}

const deactivateAPIClient = `
UPDATE api_clients
SET is_active = false, updated_at = now()
WHERE client_id = $1
`

func (s *SQLStore) DeactivateAPIClient(ctx context.Context, clientID string) error {
	res, err := s.db.ExecContext(ctx, deactivateAPIClient, clientID)
	if err != nil {
		return fmt.Errorf("deactivate api client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate api client: %w", err)
	}
	if n == 0 {
		return ErrClientNotFound
	}
	return nil
}

const createFillRecord = `
INSERT INTO fill_history (client_id, template_name, template_hash, total_filled, skipped_count, duration_ms, stats)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, client_id, template_name, template_hash, total_filled, skipped_count, duration_ms, stats, created_at
`

func (s *SQLStore) CreateFillRecord(ctx context.Context, arg CreateFillRecordParams) (FillRecord, error) {
	row := s.db.QueryRowContext(ctx, createFillRecord,
		arg.ClientID,
		arg.TemplateName,
		arg.TemplateHash,
		arg.TotalFilled,
		arg.SkippedCount,
		arg.DurationMs,
		arg.Stats,
	)
	var r FillRecord
	err := row.Scan(
		&r.ID,
		&r.ClientID,
		&r.TemplateName,
		&r.TemplateHash,
		&r.TotalFilled,
		&r.SkippedCount,
		&r.DurationMs,
		&r.Stats,
		&r.CreatedAt,
	)
	if err != nil {
		return FillRecord{}, fmt.Errorf("create fill record: %w", err)
	}
	return r, nil
}

const listFillRecords = `
SELECT id, client_id, template_name, template_hash, total_filled, skipped_count, duration_ms, stats, created_at
FROM fill_history
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

func (s *SQLStore) ListFillRecords(ctx context.Context, arg ListFillRecordsParams) ([]FillRecord, error) {
	rows, err := s.db.QueryContext(ctx, listFillRecords, arg.Limit, arg.Offset)
	if err != nil {
		return nil, fmt.Errorf("list fill records: %w", err)
	}
	defer rows.Close()

	var items []FillRecord
	for rows.Next() {
		var r FillRecord
		if err := rows.Scan(
			&r.ID,
			&r.ClientID,
			&r.TemplateName,
			&r.TemplateHash,
			&r.TotalFilled,
			&r.SkippedCount,
			&r.DurationMs,
			&r.Stats,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fill record: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fill records: %w", err)
	}
	return items, nil
}

const getFillRecord = `
SELECT id, client_id, template_name, template_hash, total_filled, skipped_count, duration_ms, stats, created_at
FROM fill_history
WHERE id = $1
`

func (s *SQLStore) GetFillRecord(ctx context.Context, id int64) (FillRecord, error) {
	row := s.db.QueryRowContext(ctx, getFillRecord, id)
	var r FillRecord
	err := row.Scan(
		&r.ID,
		&r.ClientID,
		&r.TemplateName,
		&r.TemplateHash,
		&r.TotalFilled,
		&r.SkippedCount,
		&r.DurationMs,
		&r.Stats,
		&r.CreatedAt,
	)
	if err != nil {
		return FillRecord{}, fmt.Errorf("get fill record: %w", err)
	}
	return r, nil
}

const getAggregateStats = `
SELECT
	count(*) AS total_documents,
	coalesce(sum(total_filled), 0) AS total_filled,
	coalesce(sum(skipped_count), 0) AS total_skipped,
	count(*) FILTER (WHERE created_at > now() - interval '24 hours') AS documents_last_24h
FROM fill_history
`

func (s *SQLStore) GetAggregateStats(ctx context.Context) (AggregateStats, error) {
	row := s.db.QueryRowContext(ctx, getAggregateStats)
	var a AggregateStats
	err := row.Scan(&a.TotalDocuments, &a.TotalFilled, &a.TotalSkipped, &a.DocumentsLast24h)
	if err != nil {
		return AggregateStats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	return a, nil
}
