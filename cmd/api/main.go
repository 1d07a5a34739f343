package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jpcarvalho/clubledger/internal/bankimport"
	"github.com/jpcarvalho/clubledger/internal/categorize"
	categorizeStore "github.com/jpcarvalho/clubledger/internal/categorize/store"
	categoryStore "github.com/jpcarvalho/clubledger/internal/category/store"
	"github.com/jpcarvalho/clubledger/internal/config"
	"github.com/jpcarvalho/clubledger/internal/database"
	"github.com/jpcarvalho/clubledger/internal/fee"
	feeStore "github.com/jpcarvalho/clubledger/internal/fee/store"
	clubHttp "github.com/jpcarvalho/clubledger/internal/http"
	importHandler "github.com/jpcarvalho/clubledger/internal/http/bankimport"
	categoryHandler "github.com/jpcarvalho/clubledger/internal/http/category"
	feeHandler "github.com/jpcarvalho/clubledger/internal/http/fee"
	invoiceHandler "github.com/jpcarvalho/clubledger/internal/http/invoice"
	reportHandler "github.com/jpcarvalho/clubledger/internal/http/report"
	txHandler "github.com/jpcarvalho/clubledger/internal/http/transaction"
	"github.com/jpcarvalho/clubledger/internal/invoice"
	invoiceStore "github.com/jpcarvalho/clubledger/internal/invoice/store"
	"github.com/jpcarvalho/clubledger/internal/member"
	"github.com/jpcarvalho/clubledger/internal/report"
	reportStore "github.com/jpcarvalho/clubledger/internal/report/store"
	"github.com/jpcarvalho/clubledger/internal/transaction"
	txStore "github.com/jpcarvalho/clubledger/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	members := member.NewClient(cfg.Members.DirectoryURL, cfg.Members.CacheTTL)

	var (
		transactionService = transaction.NewService(txStore.New(db))
		feeService         = fee.NewService(feeStore.New(db), members)
		invoiceService     = invoice.NewService(invoiceStore.New(db))
		reportService      = report.NewService(reportStore.New(db))
		categorizeService  = categorize.NewService(categorizeStore.New(db))
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		feeH         = feeHandler.NewHandler(feeService)
		invoiceH     = invoiceHandler.NewHandler(invoiceService)
		reportH      = reportHandler.NewHandler(reportService)
		importH      = importHandler.NewHandler(bankimport.NewParser(), transactionService, categorizeService)
		categoryH    = categoryHandler.NewHandler(categoryStore.New(db), categorizeService)
	)

	router := clubHttp.New(cfg.Auth.JWTSecret, transactionH, feeH, invoiceH, reportH, importH, categoryH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
