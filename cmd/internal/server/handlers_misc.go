package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) HomeHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "Welcome to the Docfill API",
	})
}

// getStatsHandler - сводная статистика по всей истории заполнений.
func (s *Server) getStatsHandler(c *gin.Context) {
	stats, err := s.store.GetAggregateStats(c.Request.Context())
	if err != nil {
		s.logger.Errorf("Ошибка при получении сводной статистики: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":   stats,
		"message": "Статистика успешно получена",
	})
}
