package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/zhukovvlad/docfill-go/cmd/internal/config"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

var (
	ErrInvalidCredentials = errors.New("invalid client id or secret")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// dummySecretHash используется для защиты от timing attacks
// Генерируется при инициализации пакета
var dummySecretHash []byte

func init() {
	// Генерируем реальный bcrypt хеш для обеспечения полной вычислительной нагрузки
	var err error
	dummySecretHash, err = bcrypt.GenerateFromPassword([]byte("dummy-secret-for-timing-protection"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to generate dummy hash: %v", err))
	}
}

// JWTClaims представляет payload JWT токена
type JWTClaims struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	jwt.RegisteredClaims
}

// Service предоставляет методы для аутентификации сервисных клиентов
type Service struct {
	store  history.Store
	config *config.Config
	logger *logging.Logger
}

// NewService создает новый auth service
func NewService(store history.Store, cfg *config.Config, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// TokenResult содержит результат успешной аутентификации
type TokenResult struct {
	AccessToken string
	ExpiresIn   int64
	ClientName  string
}

// IssueToken аутентифицирует клиента по client_id и секрету и выдает
// access token
func (s *Service) IssueToken(ctx context.Context, clientID, clientSecret string) (*TokenResult, error) {
	client, err := s.store.GetAPIClientByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, history.ErrClientNotFound) {
			// Выполняем dummy сравнение для защиты от timing attacks
			bcrypt.CompareHashAndPassword(dummySecretHash, []byte(clientSecret))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	// Не раскрываем статус клиента для защиты от enumeration
	if !client.IsActive {
		bcrypt.CompareHashAndPassword(dummySecretHash, []byte(clientSecret))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(clientSecret)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(client.ClientID, client.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &TokenResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.Auth.AccessTokenTTL.Seconds()),
		ClientName:  client.Name,
	}, nil
}

// ValidateAccessToken валидирует JWT access token и возвращает claims
func (s *Service) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// generateAccessToken создает JWT access token
func (s *Service) generateAccessToken(clientID, clientName string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		ClientID:   clientID,
		ClientName: clientName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "docfill-go",
			Subject:   clientID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Auth.JWTSecret))
}
