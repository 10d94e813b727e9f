package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
)

// listHistoryHandler - список записей истории заполнений с пагинацией.
func (s *Server) listHistoryHandler(c *gin.Context) {
	pageIDStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("page_size", "20")

	pageID, err := strconv.ParseInt(pageIDStr, 10, 32)
	if err != nil || pageID < 1 {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("неверный параметр page")))
		return
	}

	pageSize, err := strconv.ParseInt(pageSizeStr, 10, 32)
	if err != nil || pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("неверный параметр page_size (допустимо от 1 до 100)")))
		return
	}

	params := history.ListFillRecordsParams{
		Limit:  int32(pageSize),
		Offset: (int32(pageID) - 1) * int32(pageSize),
	}

	records, err := s.store.ListFillRecords(c.Request.Context(), params)
	if err != nil {
		s.logger.Errorf("ошибка получения истории заполнений: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	if records == nil {
		records = make([]history.FillRecord, 0)
	}

	c.JSON(http.StatusOK, records)
}

// getHistoryRecordHandler - одна запись истории вместе с полной
// статистикой прохода.
func (s *Server) getHistoryRecordHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("неверный ID записи")))
		return
	}

	record, err := s.store.GetFillRecord(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("запись с ID '%d' не найдена", id)))
			return
		}
		s.logger.Errorf("ошибка получения записи истории %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, record)
}
