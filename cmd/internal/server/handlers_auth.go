package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/auth"
)

type tokenRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	ClientName  string `json:"client_name"`
}

// tokenHandler обменивает client_id и client_secret на access token
func (s *Server) tokenHandler(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := s.authService.IssueToken(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorResponse(err))
			return
		}
		s.logger.Errorf("выдача токена не удалась: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		ClientName:  result.ClientName,
	})
}
