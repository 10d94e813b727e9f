package history

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

// APIClient - сервисный клиент API. Секрет хранится только в виде
// bcrypt-хеша.
type APIClient struct {
	ID         int64     `json:"id"`
	ClientID   string    `json:"client_id"`
	SecretHash string    `json:"-"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FillRecord - запись об одном выполненном заполнении документа.
type FillRecord struct {
	ID           int64                 `json:"id"`
	ClientID     string                `json:"client_id"`
	TemplateName string                `json:"template_name"`
	TemplateHash string                `json:"template_hash"`
	TotalFilled  int32                 `json:"total_filled"`
	SkippedCount int32                 `json:"skipped_count"`
	DurationMs   int64                 `json:"duration_ms"`
	Stats        pqtype.NullRawMessage `json:"stats"`
	CreatedAt    time.Time             `json:"created_at"`
}

// CreateFillRecordParams - параметры вставки записи истории.
type CreateFillRecordParams struct {
	ClientID     string
	TemplateName string
	TemplateHash string
	TotalFilled  int32
	SkippedCount int32
	DurationMs   int64
	Stats        pqtype.NullRawMessage
}

// CreateAPIClientParams - параметры регистрации клиента.
type CreateAPIClientParams struct {
	ClientID   string
	SecretHash string
	Name       string
}

// ListFillRecordsParams - постраничная выборка истории.
type ListFillRecordsParams struct {
	Limit  int32
	Offset int32
}

// AggregateStats - сводка по истории заполнений для /api/stats.
type AggregateStats struct {
	TotalDocuments   int64 `json:"total_documents"`
	TotalFilled      int64 `json:"total_filled"`
	TotalSkipped     int64 `json:"total_skipped"`
	DocumentsLast24h int64 `json:"documents_last_24h"`
}
