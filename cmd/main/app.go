package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/zhukovvlad/docfill-go/cmd/internal/config"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	"github.com/zhukovvlad/docfill-go/cmd/internal/server"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/fill"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"

	_ "github.com/lib/pq"
)

func main() {
	logger := logging.GetLogger()
	logger.Info("Starting Docfill API...")

	err := godotenv.Load()
	if err != nil {
		logger.Fatalf("error loading .env file: %v", err)
	}

	cfg := config.GetConfig()

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
	fillService := fill.NewService(store, cfg, logger)
	server := server.NewServer(store, logger, fillService, cfg)

	serverAddress := fmt.Sprintf("%s:%s", cfg.Listen.BindIP, cfg.Listen.Port)
	logger.Infof("Starting server on %s", serverAddress)

	err = server.Start(serverAddress)
	if err != nil {
		logger.Fatalf("error starting server: %v", err)
	}
}
