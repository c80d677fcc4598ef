package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/services"
	appweb "tally/web"
)

type Server struct {
	http.Server
	templates *template.Template
	ledger    *services.LedgerService
	logger    *log.Logger

	// Owner of every record until real authentication exists. Threaded
	// explicitly into each handler and storage call.
	userID int64
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, userID int64, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger: ledger,
		logger: logger.WithComponent(log.ComponentHTTP),
		userID: userID,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Error("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Error("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.with(s.handleIndex))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /login", s.with(s.handleLoginPage))
	mux.HandleFunc("POST /login", s.with(s.handleLoginSubmit))
	mux.HandleFunc("GET /analysis", s.with(s.handleAnalysisPage))
	mux.HandleFunc("POST /analysis", s.with(s.handleAnalysisSubmit))

	mux.HandleFunc("GET /dashboard", s.with(s.handleDashboard))

	mux.HandleFunc("GET /add_income", s.with(s.handleAddIncomeForm))
	mux.HandleFunc("POST /add_income", s.with(s.handleAddIncome))
	mux.HandleFunc("GET /update_income/{id}", s.with(s.handleUpdateIncomeForm))
	mux.HandleFunc("POST /update_income/{id}", s.with(s.handleUpdateIncome))
	mux.HandleFunc("GET /delete_income/{id}", s.with(s.handleDeleteIncomeConfirm))
	mux.HandleFunc("POST /delete_income/{id}", s.with(s.handleDeleteIncome))

	mux.HandleFunc("GET /add_expense", s.with(s.handleAddExpenseForm))
	mux.HandleFunc("POST /add_expense", s.with(s.handleAddExpense))
	mux.HandleFunc("GET /update_expense/{id}", s.with(s.handleUpdateExpenseForm))
	mux.HandleFunc("POST /update_expense/{id}", s.with(s.handleUpdateExpense))
	mux.HandleFunc("GET /delete_expense/{id}", s.with(s.handleDeleteExpenseConfirm))
	mux.HandleFunc("POST /delete_expense/{id}", s.with(s.handleDeleteExpense))

	mux.HandleFunc("GET /add_savings_goal", s.with(s.handleAddGoalForm))
	mux.HandleFunc("POST /add_savings_goal", s.with(s.handleAddGoal))
	mux.HandleFunc("GET /update_savings_goal/{id}", s.with(s.handleUpdateGoalForm))
	mux.HandleFunc("POST /update_savings_goal/{id}", s.with(s.handleUpdateGoal))
	mux.HandleFunc("GET /delete_savings_goal/{id}", s.with(s.handleDeleteGoalConfirm))
	mux.HandleFunc("POST /delete_savings_goal/{id}", s.with(s.handleDeleteGoal))

	return s
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// with adds security headers and request logging to a handler.
func (s *Server) with(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// render executes a template with the given status code.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
	}
}

// notFoundData backs the not_found.html page.
type notFoundData struct {
	What string
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, what string) {
	s.render(w, r, http.StatusNotFound, "not_found.html", notFoundData{What: what})
}

func formatAmount(m core.Money) string {
	return "$" + m.String()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
