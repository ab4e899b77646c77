// Command notifier consumes the hall events queue and appends every
// notification to <NOTIFY_LOG_DIR>/events.log.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/config"
	"github.com/iliyamo/lecture-hall-booking/internal/logging"
	"github.com/iliyamo/lecture-hall-booking/internal/queue"
)

func main() {
	config.LoadDotEnv()
	logger := logging.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"), "notifier")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	qcfg := config.LoadQueueConfig()
	logger.Info("notifier starting", zap.String("queue", qcfg.Queue), zap.String("log_dir", qcfg.LogDir))
	if err := queue.NewConsumer(qcfg, logger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
	logger.Info("notifier stopped")
}
