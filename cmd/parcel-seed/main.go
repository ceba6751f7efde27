// parcel-seed загружает справочник кодов статусов перевозчиков в Postgres.
// Повторный запуск безопасен: уже заполненные партиции не трогаются.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jammyops/parceltrack/config"
	"github.com/jammyops/parceltrack/internal/registry"
	"github.com/jammyops/parceltrack/internal/storage/pgshipment"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	sslMode := cfg.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, sslMode)

	st, err := pgshipment.New(connString)
	if err != nil {
		panic(err)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	inserted, err := st.SeedStatusCodes(ctx, registry.SeedEntries())
	if err != nil {
		panic(err)
	}
	slog.Info("status codes seeded", "inserted", inserted)
}
