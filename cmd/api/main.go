package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tarpworks/payroll-backend/internal/config"
	appHTTP "github.com/tarpworks/payroll-backend/internal/handler/http"
	"github.com/tarpworks/payroll-backend/internal/pkg/cron"
	"github.com/tarpworks/payroll-backend/internal/pkg/database"
	"github.com/tarpworks/payroll-backend/internal/pkg/export"
	"github.com/tarpworks/payroll-backend/internal/pkg/jwt"
	"github.com/tarpworks/payroll-backend/internal/pkg/notifier"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
	"github.com/tarpworks/payroll-backend/internal/pkg/realtime"
	"github.com/tarpworks/payroll-backend/internal/repository/postgresql"
	serviceAuth "github.com/tarpworks/payroll-backend/internal/service/auth"
	cashAdvanceService "github.com/tarpworks/payroll-backend/internal/service/cashadvance"
	dayOffService "github.com/tarpworks/payroll-backend/internal/service/dayoff"
	dtrService "github.com/tarpworks/payroll-backend/internal/service/dtr"
	employeeService "github.com/tarpworks/payroll-backend/internal/service/employee"
	payrollService "github.com/tarpworks/payroll-backend/internal/service/payroll"
	settingsService "github.com/tarpworks/payroll-backend/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to apply migrations: ", err)
	}

	loc := cfg.Location()
	tx := postgresql.NewTransactor(db)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dayOffRepo := postgresql.NewDayOffRepository(db)
	cashAdvanceRepo := postgresql.NewCashAdvanceRepository(db)
	dtrRepo := postgresql.NewDTRRepository(db)

	var scanNotifier notifier.Notifier = notifier.Nop{}
	if cfg.Telegram.Enabled() {
		telegram, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatal("Failed to initialize Telegram notifier: ", err)
		}
		scanNotifier = telegram
	}

	var sheets export.RowAppender = export.NopAppender{}
	if cfg.Sheets.Enabled() {
		appender, err := export.NewSheetsAppender(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range)
		if err != nil {
			log.Fatal("Failed to initialize Google Sheets: ", err)
		}
		sheets = appender
	}

	printer := printrelay.NewClient(printrelay.Config{
		BaseURL:     cfg.PrintRelay.URL,
		PrinterName: cfg.PrintRelay.PrinterName,
		PrinterIP:   cfg.PrintRelay.PrinterIP,
		Timeout:     cfg.PrintRelay.Timeout,
	})

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService, err := serviceAuth.NewAuthService(JWTService, cfg.Auth.AccessCodeHash, cfg.Auth.AccessCode)
	if err != nil {
		log.Fatal("Failed to initialize auth service: ", err)
	}
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	cashAdvanceSvc := cashAdvanceService.NewCashAdvanceService(tx, cashAdvanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		tx,
		payrollRepo,
		employeeRepo,
		dayOffRepo,
		settingsSvc,
		cashAdvanceSvc,
		printer,
		sheets,
		cfg.App.CompanyName,
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, settingsSvc, payrollSvc)
	dayOffSvc := dayOffService.NewDayOffService(tx, dayOffRepo, employeeRepo, payrollRepo, settingsSvc, payrollSvc, nil)
	dtrSvc := dtrService.NewDTRService(dtrRepo, employeeRepo, scanNotifier, loc)

	hub := realtime.NewHub()
	listener := realtime.NewListener(db.Pool, cfg.Realtime.Channel, hub)
	go listener.Run(ctx)

	scheduler := cron.NewScheduler(loc)
	if spec := cfg.Schedule.DayOffDistributionSpec; spec != "" {
		if err := cron.NewDayOffJobs(dayOffSvc).RegisterJobs(scheduler, spec); err != nil {
			log.Fatal("Failed to register cron jobs: ", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authService),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Settings:    appHTTP.NewSettingsHandler(settingsSvc),
		Payroll:     appHTTP.NewPayrollHandler(payrollSvc),
		CashAdvance: appHTTP.NewCashAdvanceHandler(cashAdvanceSvc),
		DayOff:      appHTTP.NewDayOffHandler(dayOffSvc),
		DTR:         appHTTP.NewDTRHandler(dtrSvc),
		Printer:     appHTTP.NewPrinterHandler(printer),
		Stream:      appHTTP.NewStreamHandler(hub, cfg.Realtime.PingInterval),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.AllowedOrigins,
		Env:            cfg.App.Env,
		LogLevel:       level,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
