package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/qzplatform/account-service/internal/api/http/context"
	"github.com/qzplatform/account-service/internal/api/http/router"
	"github.com/qzplatform/account-service/internal/config"
	creds "github.com/qzplatform/account-service/internal/credentials"
	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/mail"
	"github.com/qzplatform/account-service/internal/model"
	"github.com/qzplatform/account-service/internal/repository/postgres"
	"github.com/qzplatform/account-service/internal/server"
	"github.com/qzplatform/account-service/internal/service"
	storage "github.com/qzplatform/account-service/internal/storage/minio"
	"github.com/qzplatform/account-service/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	sessionManager := token.NewJWT(cfg.JWT.Secret)
	ctxMgr := httpctx.NewManager()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	dispatcher := mail.NewDispatcher(mailer, logger, cfg.Mail.BufferSize, cfg.Mail.MaxRetries)
	defer dispatcher.Close()

	hasher := creds.NewBcryptHasher()

	authService := service.NewAuth(accountRepo, hasher, sessionManager, dispatcher, logger)
	resetService := service.NewReset(accountRepo, hasher, dispatcher, cfg.Mail.ResetURLFmt, logger)
	accountService := service.NewAccount(accountRepo, hasher, dispatcher, logger)
	provisionService := service.NewProvision(accountService, storageClient, logger)

	r := router.New(authService, resetService, accountService, provisionService, sessionManager, ctxMgr, storageClient, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
