package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toiture-backend/internal/config"
	"toiture-backend/internal/draft"
	"toiture-backend/internal/service"
	generate_excel "toiture-backend/internal/service/generate-excel"
	quote_pdf "toiture-backend/internal/service/quote-pdf"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remote, err := openRemote(ctx, cfg.Remote)
	if err != nil {
		log.Error("failed to open submission store", slog.String("driver", cfg.Remote.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer remote.Close()

	local, err := openLocal(cfg.Local)
	if err != nil {
		log.Error("failed to open local store", slog.String("driver", cfg.Local.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer local.Close()

	prices := service.NewPriceService(log, local)
	if _, err := prices.Load(ctx); err != nil {
		log.Warn("price overrides unavailable, using defaults", slog.String("error", err.Error()))
	}

	calc := service.NewCalculatorService(log, remote, local, prices, cfg.Calculator.AutosaveDelay)

	janitor, err := draft.NewJanitor(log, local, cfg.Calculator.JanitorSpec, cfg.Calculator.DraftMaxAge)
	if err != nil {
		log.Error("failed to schedule draft janitor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	janitor.Start()
	defer janitor.Stop()

	deps := dependencies{
		submissions: remote,
		prices:      prices,
		calculator:  calc,
		excel:       generate_excel.NewGenerateService(),
		quotes: quote_pdf.NewQuoteService(quote_pdf.Company{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
			RBQ:     cfg.Company.RBQ,
		}),
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, deps),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	// черновики пишем после остановки приёма запросов
	flushed := calc.FlushAll()
	log.Info("server stopped", slog.Int("drafts_flushed", flushed))
}
