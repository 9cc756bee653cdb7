package cmd

import (
	"context"
	"fmt"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/koinbxtitas/crypto-frontend/internal/delivery/http"
	"github.com/koinbxtitas/crypto-frontend/internal/delivery/telegram"
	"github.com/koinbxtitas/crypto-frontend/internal/repository"
	"github.com/koinbxtitas/crypto-frontend/internal/service"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the crypto-frontend server",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.cfg, appDep.log, appDep.echo, appDep.validator, services)
	telegramHandler := telegram.NewTelegramBotHandler(ctx, appDep.cfg, appDep.log, appDep.telegramBot, services.ChatService, appDep.cache)

	if err := services.TickerService.Start(ctx); err != nil {
		log.Fatalf("Failed to start ticker scheduler: %v", err)
	}

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		telegramHandler.Start()
		return nil
	})

	<-gctx.Done()
	appDep.log.Info("Shutting down gracefully...")

	telegramHandler.Stop()
	services.TickerService.Stop()

	if err := apiServer.Stop(); err != nil {
		appDep.log.Error("Failed to stop HTTP server", logger.ErrorField(err))
	}

	if err := g.Wait(); err != nil {
		appDep.log.Error("Server exited with error", logger.ErrorField(err))
	}

	if err := appDep.Close(); err != nil {
		log.Printf("Failed to close app dependency: %v", err)
	}
}

type HTTPServer struct {
	ctx     context.Context
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewHTTPServer(ctx context.Context, appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		ctx:     ctx,
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Start() error {
	s.appDep.log.Info("Starting HTTP server", logger.IntField("port", s.appDep.cfg.API.Port))
	address := fmt.Sprintf(":%d", s.appDep.cfg.API.Port)

	s.handler.SetupRoutes()

	return s.appDep.echo.Start(address)
}

func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
