package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/receiptlab/receipt-designer/internal/api"
	"github.com/receiptlab/receipt-designer/internal/printer"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	cfg := loadConfig()

	logger, err := newLogger(cfg.GetString("log_level"))
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("receipt designer server",
		zap.String("version", Version),
		zap.String("addr", cfg.GetString("addr")))

	pool := printer.NewConnectionPool()
	queue := printer.NewQueue(pool, cfg.GetInt("max_retries"), logger)
	defer queue.Stop()
	defer pool.DisconnectAll()

	server := api.NewServer(pool, queue, api.Config{
		AllowOrigins: splitList(cfg.GetString("allow_origins")),
		PaperWidth:   cfg.GetString("paper_width"),
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(cfg.GetString("addr"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal("server error", zap.Error(err))
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}
}

// loadConfig reads settings from config.yaml (if present) and the
// RECEIPT_* environment, with sane defaults.
func loadConfig() *viper.Viper {
	v := viper.New()

	v.SetDefault("addr", "0.0.0.0:12212")
	v.SetDefault("log_level", "info")
	v.SetDefault("allow_origins", "")
	v.SetDefault("paper_width", "80mm")
	v.SetDefault("max_retries", 3)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/receipt-designer")
	_ = v.ReadInConfig()

	v.SetEnvPrefix("RECEIPT")
	v.AutomaticEnv()

	return v
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
