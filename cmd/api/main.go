package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dhanitra/dhanitra/internal/advice"
	"github.com/dhanitra/dhanitra/internal/api/handlers"
	"github.com/dhanitra/dhanitra/internal/api/middleware"
	"github.com/dhanitra/dhanitra/internal/auth"
	"github.com/dhanitra/dhanitra/internal/bills"
	"github.com/dhanitra/dhanitra/internal/chat"
	"github.com/dhanitra/dhanitra/internal/config"
	"github.com/dhanitra/dhanitra/internal/dispatch"
	"github.com/dhanitra/dhanitra/internal/domain"
	"github.com/dhanitra/dhanitra/internal/logger"
	"github.com/dhanitra/dhanitra/internal/store"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Session-lifetime state: seeded once at startup, torn down on exit.
	financeStore := store.New(domain.Seed())

	dispatcher, err := dispatch.New(financeStore, cfg.DefaultAccountID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create action dispatcher")
	}

	generator, err := advice.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	pipeline := advice.NewPipeline(generator, dispatcher, cfg.AdviceTimeout, log)

	var blobStore bills.BlobStore
	if cfg.GCSBucket != "" {
		log.Info().Str("bucket", cfg.GCSBucket).Msg("Storing bill files in GCS")
		blobStore = bills.NewGCSStore(cfg.GCSBucket)
	} else {
		log.Warn().Msg("No GCS bucket configured - bill files are kept in memory")
		blobStore = bills.NewMemoryStore()
	}

	authService := auth.NewService(cfg.LoginEmail, cfg.LoginPassword)
	sessions := chat.NewManager()

	authHandler := handlers.NewAuthHandler(authService, log)
	financeHandler := handlers.NewFinanceHandler(financeStore, log)
	billsHandler := handlers.NewBillsHandler(financeStore, blobStore, log)
	chatHandler := handlers.NewChatHandler(financeStore, sessions, pipeline, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Login(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Logout(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			financeHandler.ListAccounts(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			financeHandler.ListTransactions(w, r)
		case http.MethodPost:
			financeHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			financeHandler.ListGoals(w, r)
		case http.MethodPost:
			financeHandler.CreateGoal(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/investments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			financeHandler.ListInvestments(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			financeHandler.ListTodos(w, r)
		case http.MethodPost:
			financeHandler.CreateTodo(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/todos/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/todos/")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(rest, "/toggle"):
			todoID := strings.TrimSuffix(rest, "/toggle")
			if todoID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Todo ID is required")
				return
			}
			financeHandler.ToggleTodo(w, r, todoID)
		case r.Method == http.MethodDelete:
			if rest == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Todo ID is required")
				return
			}
			financeHandler.DeleteTodo(w, r, rest)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/bills", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			billsHandler.ListBills(w, r)
		case http.MethodPost:
			billsHandler.UploadBill(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/bills/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/bills/")
		if r.Method == http.MethodPost && strings.HasSuffix(rest, "/link") {
			billID := strings.TrimSuffix(rest, "/link")
			if billID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Bill ID is required")
				return
			}
			billsHandler.LinkBill(w, r, billID)
			return
		}
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Turn(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.CreateSession(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat/sessions/", func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimPrefix(r.URL.Path, "/api/chat/sessions/")
		if sessionID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Session ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			chatHandler.GetTranscript(w, r, sessionID)
		case http.MethodDelete:
			chatHandler.CloseSession(w, r, sessionID)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(log)(
				middleware.CORS(
					middleware.Auth(authService)(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // chat turns block on the advice call
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
