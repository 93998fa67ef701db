// Command ocladmin serves the OCL subscription admin pages.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/ocladmin/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	log := newLogger(cfg.Log)
	slog.SetDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("ocladmin stopped", logger.Error(err))
		os.Exit(1)
	}
}
