package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/docfill-go/cmd/internal/filler"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/apierrors"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// fillStatsHeader - краткая сводка прохода, отдаваемая в заголовке рядом
// с бинарным телом ответа.
type fillStatsHeader struct {
	TotalFilled   int                        `json:"total_filled"`
	SkippedCount  int                        `json:"skipped_count"`
	UnfilledCount int                        `json:"unfilled_count"`
	ErrorCount    int                        `json:"error_count"`
	PatternCounts map[filler.PatternKind]int `json:"pattern_counts"`
	RecordID      int64                      `json:"record_id,omitempty"`
}

// fillDocumentHandler принимает multipart-запрос: файл шаблона в поле
// template и JSON с данными в поле data. Возвращает заполненный документ
// как вложение; статистика прохода уезжает в заголовке X-Fill-Stats.
func (s *Server) fillDocumentHandler(c *gin.Context) {
	handlerLogger := s.logger.WithField("handler", "fillDocumentHandler")

	maxBytes := s.config.Filler.MaxUploadSizeMB << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	fileHeader, err := c.FormFile("template")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("поле template обязательно: %w", err)))
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".docx" {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("ожидается файл .docx, получен %q", fileHeader.Filename)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handlerLogger.Errorf("не удалось открыть загруженный файл: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	defer file.Close()

	template, err := io.ReadAll(file)
	if err != nil {
		handlerLogger.Errorf("не удалось прочитать загруженный файл: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	dataJSON := c.PostForm("data")
	if dataJSON == "" {
		c.JSON(http.StatusBadRequest, errorResponse(errors.New("поле data обязательно")))
		return
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(dataJSON), &raw); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("некорректный JSON в поле data: %w", err)))
		return
	}
	data := make(filler.DataRecord, len(raw))
	for k, v := range raw {
		data[filler.FieldKey(k)] = v
	}

	clientID := clientIDFromContext(c)
	requestLogger := handlerLogger.WithField("client_id", clientID).WithField("template", fileHeader.Filename)
	requestLogger.Info("Начало заполнения документа")

	result, err := s.fillService.FillDocument(c.Request.Context(), clientID, fileHeader.Filename, template, data)
	if err != nil {
		var validationErr *apierrors.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, errorResponse(err))
			return
		}
		requestLogger.Errorf("заполнение документа не удалось: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	requestLogger.Infof("Документ заполнен: %d полей, %d пропущено, %d не заполнено",
		result.Stats.TotalFilled, result.Stats.SkippedCount, len(result.Stats.UnfilledFields))

	header, _ := json.Marshal(fillStatsHeader{
		TotalFilled:   result.Stats.TotalFilled,
		SkippedCount:  result.Stats.SkippedCount,
		UnfilledCount: len(result.Stats.UnfilledFields),
		ErrorCount:    len(result.Stats.Errors),
		PatternCounts: result.Stats.PatternCounts,
		RecordID:      result.RecordID,
	})

	filename := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename)) + "_filled.docx"
	c.Header("X-Fill-Stats", string(header))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK, docxContentType, result.Document)
}
