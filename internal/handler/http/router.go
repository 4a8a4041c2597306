package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tarpworks/payroll-backend/internal/handler/http/middleware"
	"github.com/tarpworks/payroll-backend/internal/pkg/jwt"
)

type Handlers struct {
	Auth        AuthHandler
	Employee    EmployeeHandler
	Settings    SettingsHandler
	Payroll     PayrollHandler
	CashAdvance CashAdvanceHandler
	DayOff      DayOffHandler
	DTR         DTRHandler
	Printer     PrinterHandler
	Stream      StreamHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tarp-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SnakeCaseBody)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			// EventSource cannot set headers, so the stream also accepts ?jwt=.
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
					r.Get("/barcode.png", h.Employee.Barcode)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.GetSettings)
				r.Put("/", h.Settings.UpdateSettings)
				r.Post("/custom-commissions", h.Settings.AddCustomCommission)
				r.Delete("/custom-commissions/{id}", h.Settings.RemoveCustomCommission)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/preview", h.Payroll.Preview)
				r.Get("/export", h.Payroll.Export)
				r.Get("/", h.Payroll.ListPayrollRecords)
				r.Post("/", h.Payroll.CreatePayrollRecord)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetPayrollRecord)
					r.Put("/", h.Payroll.UpdatePayrollRecord)
					r.Delete("/", h.Payroll.DeletePayrollRecord)
					r.Post("/process", h.Payroll.ProcessPayrollRecord)
					r.Get("/payslip.pdf", h.Payroll.PayslipPDF)
					r.Post("/print", h.Payroll.PrintPayslip)
				})
			})

			r.Route("/cash-advances", func(r chi.Router) {
				r.Get("/", h.CashAdvance.ListCashAdvances)
				r.Post("/", h.CashAdvance.CreateCashAdvance)
				r.Get("/balance/{employeeId}", h.CashAdvance.Balance)
				r.Delete("/{id}", h.CashAdvance.DeleteCashAdvance)
				r.Post("/{id}/payments", h.CashAdvance.AddPayment)
			})

			r.Route("/day-offs", func(r chi.Router) {
				r.Get("/", h.DayOff.ListDayOffs)
				r.Post("/", h.DayOff.CreateDayOff)
				r.Delete("/", h.DayOff.DeleteMonth)
				r.Post("/auto-distribute", h.DayOff.AutoDistribute)
				r.Post("/swap", h.DayOff.Swap)
				r.Get("/qualification", h.DayOff.Qualification)
				r.Delete("/{id}", h.DayOff.DeleteDayOff)
			})

			r.Route("/dtr", func(r chi.Router) {
				r.Get("/", h.DTR.ListDTR)
				r.Post("/check-in", h.DTR.CheckIn)
			})

			r.Get("/printer/health", h.Printer.Health)
			r.Get("/changes/stream", h.Stream.Changes)
		})
	})
	return r
}
