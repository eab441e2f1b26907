package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pustakalaya/intake-service/config"
	"github.com/pustakalaya/intake-service/internal/handler"
	"github.com/pustakalaya/intake-service/internal/repository"
	"github.com/pustakalaya/intake-service/internal/server"
	"github.com/pustakalaya/intake-service/internal/service"
	"github.com/pustakalaya/intake-service/internal/storage"
	"github.com/pustakalaya/intake-service/migrations"
	"github.com/pustakalaya/intake-service/pkg/kafka"
	"github.com/pustakalaya/intake-service/pkg/logger"
	"github.com/pustakalaya/intake-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "intake")

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var events kafka.Enqueuer
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close() //nolint:errcheck
		events = kafka.NewEnqueuer(producer)
	}

	store := storage.NewCertificateStore(cfg.Storage)
	svc := service.NewService(repo, store, events, cfg.Auth, log)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g := new(errgroup.Group)
	g.Go(func() error {
		return srv.Run()
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		log.Debug("server stopped", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
