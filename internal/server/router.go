package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/auth"
	"github.com/xplicit-dev/project-finance-manager/internal/handlers"
	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Auth, settings, destroy, health and metrics endpoints stay open;
// everything else requires a valid session.
func New(db *gorm.DB, defaultPassword string) http.Handler {
	mux := http.NewServeMux()

	settingsSvc := services.NewSettingsService(db, defaultPassword)

	projectH := handlers.NewProjectHandler(db, services.NewProjectService(db))
	employeeH := handlers.NewEmployeeHandler(db, services.NewEmployeeService(db))
	invoiceH := handlers.NewInvoiceHandler(db, services.NewInvoiceService(db))
	paymentH := handlers.NewPaymentHandler(db, services.NewPaymentService(db))
	payoutH := handlers.NewPayoutHandler(db, services.NewPayoutService(db))
	assignmentH := handlers.NewAssignmentHandler(services.NewAssignmentService(db))
	noteH := handlers.NewNoteHandler(db)
	settingsH := handlers.NewSettingsHandler(settingsSvc)
	authH := handlers.NewAuthHandler(settingsSvc)
	reportH := handlers.NewReportHandler(services.NewReportService(db))
	backupH := handlers.NewBackupHandler(services.NewBackupService(db))

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// --- Auth endpoints (open) ---
	mux.HandleFunc("POST /auth/login", authH.Login)
	mux.HandleFunc("POST /auth/logout", authH.Logout)
	mux.HandleFunc("GET /auth/check", authH.Check)

	// --- Settings endpoints (open, so the password works from the login
	// screen and currency renders before login) ---
	mux.HandleFunc("GET /settings", settingsH.Get)
	mux.HandleFunc("PUT /settings", settingsH.Update)
	mux.HandleFunc("PUT /settings/password", settingsH.ChangePassword)

	mux.HandleFunc("DELETE /destroy", backupH.Destroy)

	gate := func(h http.HandlerFunc) http.Handler { return auth.RequireAuth(h) }

	// --- Projects ---
	mux.Handle("GET /projects", gate(projectH.List))
	mux.Handle("POST /projects", gate(projectH.Create))
	mux.Handle("GET /projects/{id}", gate(projectH.Get))
	mux.Handle("PUT /projects/{id}", gate(projectH.Update))
	mux.Handle("DELETE /projects/{id}", gate(projectH.Delete))

	// --- Team assignments ---
	mux.Handle("POST /projects/{id}/employees", gate(assignmentH.Assign))
	mux.Handle("PATCH /projects/{id}/employees/{employeeId}", gate(assignmentH.Update))
	mux.Handle("DELETE /projects/{id}/employees/{employeeId}", gate(assignmentH.Remove))

	// --- Employees ---
	mux.Handle("GET /employees", gate(employeeH.List))
	mux.Handle("POST /employees", gate(employeeH.Create))
	mux.Handle("GET /employees/{id}", gate(employeeH.Get))
	mux.Handle("PUT /employees/{id}", gate(employeeH.Update))
	mux.Handle("DELETE /employees/{id}", gate(employeeH.Delete))

	// --- Invoices ---
	mux.Handle("GET /invoices", gate(invoiceH.List))
	mux.Handle("POST /invoices", gate(invoiceH.Create))
	mux.Handle("GET /invoices/{id}", gate(invoiceH.Get))
	mux.Handle("PUT /invoices/{id}", gate(invoiceH.Update))
	mux.Handle("DELETE /invoices/{id}", gate(invoiceH.Delete))

	// --- Payments ---
	mux.Handle("GET /payments", gate(paymentH.List))
	mux.Handle("POST /payments", gate(paymentH.Create))
	mux.Handle("GET /payments/{id}", gate(paymentH.Get))
	mux.Handle("PUT /payments/{id}", gate(paymentH.Update))
	mux.Handle("DELETE /payments/{id}", gate(paymentH.Delete))

	// --- Payouts ---
	mux.Handle("GET /payouts", gate(payoutH.List))
	mux.Handle("POST /payouts", gate(payoutH.Create))
	mux.Handle("PUT /payouts/{id}", gate(payoutH.Update))
	mux.Handle("DELETE /payouts/{id}", gate(payoutH.Delete))

	// --- Notes ---
	mux.Handle("GET /notes", gate(noteH.List))
	mux.Handle("POST /notes", gate(noteH.Create))

	// --- Reports ---
	mux.Handle("GET /reports/projects", gate(reportH.Projects))
	mux.Handle("GET /reports/employees", gate(reportH.Employees))
	mux.Handle("GET /reports/export", gate(reportH.Export))

	// --- Backup ---
	mux.Handle("GET /db/export", gate(backupH.Export))
	mux.Handle("POST /db/import", gate(backupH.Import))

	return withRecover(withMetrics(mux, auth.Middleware(mux)))
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
