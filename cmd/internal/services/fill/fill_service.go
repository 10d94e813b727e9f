package fill

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sqlc-dev/pqtype"

	"github.com/zhukovvlad/docfill-go/cmd/internal/config"
	"github.com/zhukovvlad/docfill-go/cmd/internal/docx"
	"github.com/zhukovvlad/docfill-go/cmd/internal/filler"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/apierrors"
	"github.com/zhukovvlad/docfill-go/cmd/internal/util"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

// Service выполняет полный цикл заполнения: docx-контейнер, движок,
// запись истории.
type Service struct {
	store  history.Store
	config *config.Config
	logger *logging.Logger
}

func NewService(store history.Store, cfg *config.Config, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Result - заполненный документ вместе со статистикой прохода.
type Result struct {
	Document []byte
	Stats    *filler.Stats
	RecordID int64
}

// FillDocument заполняет шаблон данными и записывает результат в историю.
// Ошибка записи истории не роняет запрос: документ уже заполнен, клиент
// его получит.
func (s *Service) FillDocument(ctx context.Context, clientID, templateName string, template []byte, data filler.DataRecord) (*Result, error) {
	if len(template) == 0 {
		return nil, apierrors.NewValidationError("template file is empty")
	}
	if len(data) == 0 {
		return nil, apierrors.NewValidationError("data record is empty")
	}

	start := time.Now()

	pkg, err := docx.OpenBytes(template)
	if err != nil {
		return nil, apierrors.NewValidationError("invalid docx template: %v", err)
	}

	engine := filler.NewEngine(filler.FillOptions{PadDates: s.config.Filler.PadDates}, s.logger)
	stats := engine.FillDocument(pkg.Document, data)

	filled, err := pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialize filled document: %w", err)
	}

	result := &Result{Document: filled, Stats: stats}

	record, err := s.recordHistory(ctx, clientID, templateName, template, stats, time.Since(start))
	if err != nil {
		s.logger.Errorf("failed to record fill history: %v", err)
		return result, nil
	}
	result.RecordID = record.ID

	return result, nil
}

func (s *Service) recordHistory(ctx context.Context, clientID, templateName string, template []byte, stats *filler.Stats, elapsed time.Duration) (history.FillRecord, error) {
	statsJSON := pqtype.NullRawMessage{}
	if raw, err := json.Marshal(stats); err == nil {
		statsJSON = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	return s.store.CreateFillRecord(ctx, history.CreateFillRecordParams{
		ClientID:     clientID,
		TemplateName: templateName,
		TemplateHash: util.GetSHA256Hash(template),
		TotalFilled:  int32(stats.TotalFilled),
		SkippedCount: int32(stats.SkippedCount),
		DurationMs:   elapsed.Milliseconds(),
		Stats:        statsJSON,
	})
}
