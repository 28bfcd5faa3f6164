package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dhanitra/dhanitra/internal/advice"
	"github.com/dhanitra/dhanitra/internal/api/middleware"
	"github.com/dhanitra/dhanitra/internal/auth"
	"github.com/dhanitra/dhanitra/internal/bills"
	"github.com/dhanitra/dhanitra/internal/chat"
	"github.com/dhanitra/dhanitra/internal/store"
)

// writeStoreError maps a store failure onto an HTTP response:
// validation failures are the client's fault, everything else is ours.
func writeStoreError(w http.ResponseWriter, err error) {
	if store.IsValidation(err) {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	svc *auth.Service
	log zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.log.Info().Str("email", req.Email).Msg("User logged in")
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(middleware.Token(r))
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// FinanceHandler serves the entity collections and their mutations.
type FinanceHandler struct {
	store *store.Store
	log   zerolog.Logger
}

// NewFinanceHandler creates a new finance handler.
func NewFinanceHandler(st *store.Store, log zerolog.Logger) *FinanceHandler {
	return &FinanceHandler{store: st, log: log}
}

// ListAccounts handles GET /api/accounts
func (h *FinanceHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Accounts())
}

// ListTransactions handles GET /api/transactions
func (h *FinanceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Transactions())
}

// CreateTransaction handles POST /api/transactions
func (h *FinanceHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input store.AddTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.store.AddTransaction(input)
	if err != nil {
		h.log.Warn().Err(err).Msg("Rejected transaction")
		writeStoreError(w, err)
		return
	}

	h.log.Info().Str("transaction_id", txn.ID).Str("account_id", txn.AccountID).Msg("Transaction created")
	middleware.WriteJSON(w, http.StatusCreated, txn)
}

// ListGoals handles GET /api/goals
func (h *FinanceHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Goals())
}

// CreateGoal handles POST /api/goals
func (h *FinanceHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var input store.AddGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.store.AddGoal(input)
	if err != nil {
		h.log.Warn().Err(err).Msg("Rejected goal")
		writeStoreError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, goal)
}

// ListInvestments handles GET /api/investments
func (h *FinanceHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Investments())
}

// ListTodos handles GET /api/todos
func (h *FinanceHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Todos())
}

// CreateTodo handles POST /api/todos
func (h *FinanceHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task string `json:"task"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.store.AddTodo(req.Task)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, todo)
}

// ToggleTodo handles POST /api/todos/{id}/toggle
func (h *FinanceHandler) ToggleTodo(w http.ResponseWriter, r *http.Request, todoID string) {
	h.store.ToggleTodo(todoID)
	middleware.WriteJSON(w, http.StatusOK, h.store.Todos())
}

// DeleteTodo handles DELETE /api/todos/{id}
func (h *FinanceHandler) DeleteTodo(w http.ResponseWriter, r *http.Request, todoID string) {
	h.store.DeleteTodo(todoID)
	middleware.WriteJSON(w, http.StatusOK, h.store.Todos())
}

// BillsHandler handles bill uploads and linking.
type BillsHandler struct {
	store *store.Store
	blobs bills.BlobStore
	log   zerolog.Logger
}

// NewBillsHandler creates a new bills handler.
func NewBillsHandler(st *store.Store, blobs bills.BlobStore, log zerolog.Logger) *BillsHandler {
	return &BillsHandler{store: st, blobs: blobs, log: log}
}

// ListBills handles GET /api/bills
func (h *BillsHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Bills())
}

// UploadBill handles POST /api/bills. The request is a multipart form
// with one "file" part; images and PDFs only.
func (h *BillsHandler) UploadBill(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "A file upload is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !bills.AllowedType(contentType) {
		middleware.WriteError(w, http.StatusBadRequest, "Only image and PDF files are accepted")
		return
	}

	fileName := filepath.Base(header.Filename)
	fileURL, err := h.blobs.Save(r.Context(), fileName, contentType, file)
	if err != nil {
		h.log.Error().Err(err).Str("file_name", fileName).Msg("Failed to store bill file")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	bill, err := h.store.AddBill(store.AddBillInput{
		FileName: fileName,
		FileType: contentType,
		FileURL:  fileURL,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.log.Info().Str("bill_id", bill.ID).Str("file_url", fileURL).Msg("Bill uploaded")
	middleware.WriteJSON(w, http.StatusCreated, bill)
}

// LinkBill handles POST /api/bills/{id}/link
func (h *BillsHandler) LinkBill(w http.ResponseWriter, r *http.Request, billID string) {
	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TransactionID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "transactionId is required")
		return
	}

	h.store.LinkBillToTransaction(req.TransactionID, billID)
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"billId":        billID,
		"transactionId": req.TransactionID,
	})
}

// Adviser runs one chat turn; satisfied by *advice.Pipeline.
type Adviser interface {
	Respond(ctx context.Context, userText string, snap store.Snapshot) advice.Result
}

// ChatHandler handles chat sessions and chat turns.
type ChatHandler struct {
	store    *store.Store
	sessions *chat.Manager
	adviser  Adviser
	log      zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(st *store.Store, sessions *chat.Manager, adviser Adviser, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{store: st, sessions: sessions, adviser: adviser, log: log}
}

// CreateSession handles POST /api/chat/sessions
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Open()
	middleware.WriteJSON(w, http.StatusCreated, map[string]string{"sessionId": id})
}

// CloseSession handles DELETE /api/chat/sessions/{id}. Closing cancels
// any in-flight turn for the session.
func (h *ChatHandler) CloseSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	h.sessions.Close(sessionID)
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// GetTranscript handles GET /api/chat/sessions/{id}
func (h *ChatHandler) GetTranscript(w http.ResponseWriter, r *http.Request, sessionID string) {
	messages, err := h.sessions.Transcript(sessionID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, messages)
}

// Turn handles POST /api/chat: one complete chat turn against the
// current store snapshot.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "message is required")
		return
	}

	turnCtx, err := h.sessions.Begin(r.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrSessionNotFound):
			middleware.WriteError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, chat.ErrTurnInFlight):
			middleware.WriteError(w, http.StatusConflict, "A chat turn is already in flight")
		default:
			middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	result := h.adviser.Respond(turnCtx, req.Message, h.store.Snapshot())
	h.sessions.Finish(req.SessionID, result.Text)

	middleware.WriteJSON(w, http.StatusOK, result)
}
