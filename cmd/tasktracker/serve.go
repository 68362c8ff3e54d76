package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"task-tracker/internal/api"
	"task-tracker/internal/bot"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := repository.NewDB(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("db: %w", err)
			}
			sqlDB, err := db.DB()
			if err == nil {
				defer sqlDB.Close()
			}

			taskRepo := repository.NewTaskRepository(db)
			categoryRepo := repository.NewCategoryRepository(db)
			taskSvc := service.NewTaskService(taskRepo, categoryRepo)
			reportSvc := service.NewReportService(taskRepo)

			var notifier bot.Notifier = bot.NewLogNotifier(reportSvc)
			if cfg.TelegramToken != "" {
				telegramBot, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID, reportSvc)
				if err != nil {
					return fmt.Errorf("bot: %w", err)
				}
				notifier = telegramBot
			}

			if cfg.ReportInterval > 0 {
				scheduler := service.NewSchedulerService(time.Local)
				if _, err := scheduler.ScheduleInterval("status report", cfg.ReportInterval, notifier.SendStatusReport); err != nil {
					return fmt.Errorf("schedule reports: %w", err)
				}
				scheduler.Start()
				defer scheduler.Stop()
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           api.NewServer(taskSvc).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("[info] task tracker listening on %s (db %s)", cfg.HTTPAddr, cfg.DatabasePath)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			log.Println("Shutdown complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")

	return cmd
}
