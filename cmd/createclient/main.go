package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/zhukovvlad/docfill-go/cmd/internal/config"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	"github.com/zhukovvlad/docfill-go/cmd/internal/util"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"

	_ "github.com/lib/pq"
)

func main() {
	logger := logging.GetLogger()
	logger.Info("Create API Client Tool")

	// Загружаем .env файл
	err := godotenv.Load()
	if err != nil {
		logger.Warnf("Warning: error loading .env file: %v", err)
	}

	cfg := config.GetConfig()

	// Подключение к базе данных
	conn, err := sql.Open(cfg.Database.Driver, cfg.Database.Source)
	if err != nil {
		logger.Fatalf("error connecting to database: %v", err)
	}
	defer conn.Close()

	if err = conn.Ping(); err != nil {
		logger.Fatalf("error pinging database: %v", err)
	}

	logger.Info("Database connection established")

	if err := history.Migrate(context.Background(), conn); err != nil {
		logger.Fatalf("error applying schema: %v", err)
	}

	store := history.NewStore(conn)
	ctx := context.Background()

	// Запрашиваем client_id
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter client id: ")
	clientID, err := reader.ReadString('\n')
	if err != nil {
		logger.Fatalf("failed to read client id: %v", err)
	}
	clientID = strings.ToLower(strings.TrimSpace(clientID))

	// Проверяем формат идентификатора
	idPattern := `^[a-z0-9][a-z0-9\-_]{2,63}$`
	matched, err := regexp.MatchString(idPattern, clientID)
	if err != nil || !matched {
		logger.Fatal("invalid client id format (lowercase letters, digits, '-', '_', 3-64 chars)")
	}

	// Проверяем, не существует ли уже такой клиент
	_, err = store.GetAPIClientByClientID(ctx, clientID)
	if err == nil {
		logger.Fatalf("client with id %s already exists", clientID)
	} else if !errors.Is(err, history.ErrClientNotFound) {
		logger.Fatalf("failed to check existing client: %v", err)
	}

	fmt.Print("Enter client name: ")
	name, err := reader.ReadString('\n')
	if err != nil {
		logger.Fatalf("failed to read client name: %v", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Fatal("client name must not be empty")
	}

	// Секрет либо вводится вручную, либо генерируется
	fmt.Print("Enter client secret (leave empty to generate): ")
	secretBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		logger.Fatalf("failed to read secret: %v", err)
	}
	fmt.Println()

	secret := string(secretBytes)
	generated := false
	if secret == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			logger.Fatalf("failed to generate secret: %v", err)
		}
		secret = hex.EncodeToString(raw)
		generated = true
	} else if len(secret) < 16 {
		logger.Fatal("secret must be at least 16 characters long")
	}

	// Хешируем секрет
	secretHash, err := util.HashSecret(secret)
	if err != nil {
		logger.Fatalf("failed to hash secret: %v", err)
	}

	client, err := store.CreateAPIClient(ctx, history.CreateAPIClientParams{
		ClientID:   clientID,
		SecretHash: secretHash,
		Name:       name,
	})
	if err != nil {
		logger.Fatalf("failed to create api client: %v", err)
	}

	logger.Infof("✓ API client created successfully!")
	logger.Infof("  ID: %d", client.ID)
	logger.Infof("  Client ID: %s", client.ClientID)
	logger.Infof("  Name: %s", client.Name)
	logger.Infof("  Created: %s", client.CreatedAt.Format("2006-01-02 15:04:05"))
	if generated {
		// Секрет показывается один раз, в БД хранится только хеш.
		logger.Infof("  Secret: %s", secret)
	}
}
