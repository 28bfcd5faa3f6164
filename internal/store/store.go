// Package store holds all entity collections for one dashboard session.
// It is the single source of truth: collections are owned exclusively by
// the store and every accessor hands out copies. State lives in memory
// for the lifetime of the session - there is no persistence layer.
package store

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dhanitra/dhanitra/internal/domain"
)

// Store is the in-memory finance state store. It is safe for concurrent
// use; AddTransaction's insert and balance adjustment happen under one
// lock section, so no reader can observe one without the other.
type Store struct {
	mu           sync.RWMutex
	accounts     []domain.Account
	transactions []domain.Transaction
	goals        []domain.Goal
	investments  []domain.Investment
	todos        []domain.Todo
	bills        []domain.Bill

	validate *validator.Validate
}

// New creates a store initialized from the given seed data.
func New(seed domain.SeedData) *Store {
	v := validator.New()
	// Report failures by JSON field name so ValidationError matches the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &Store{validate: v}
	s.accounts = append(s.accounts, seed.Accounts...)
	s.transactions = append(s.transactions, seed.Transactions...)
	s.goals = append(s.goals, seed.Goals...)
	s.investments = append(s.investments, seed.Investments...)
	s.todos = append(s.todos, seed.Todos...)
	s.bills = append(s.bills, seed.Bills...)
	return s
}

// AddTransactionInput is the caller-supplied part of a new transaction.
type AddTransactionInput struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    domain.Category `json:"category"`
	AccountID   string          `json:"accountId" validate:"required"`
}

// AddTransaction creates a transaction dated today, prepends it to the
// transaction sequence and adjusts the matching account's balance by the
// transaction amount. The two updates are one atomic step: no reader can
// see the transaction without the balance change or vice versa.
func (s *Store) AddTransaction(input AddTransactionInput) (domain.Transaction, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Transaction{}, fromValidator(err)
	}
	if input.Amount.IsZero() {
		return domain.Transaction{}, invalidField("amount", "must be a non-zero signed amount")
	}
	category, err := domain.ParseCategory(string(input.Category))
	if err != nil {
		return domain.Transaction{}, invalidField("category", "must be a known category")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.accountIndex(input.AccountID)
	if idx < 0 {
		return domain.Transaction{}, invalidField("accountId", "does not resolve to an existing account")
	}

	txn := domain.Transaction{
		ID:          domain.NewID("txn"),
		Date:        domain.Today(),
		Description: input.Description,
		Amount:      input.Amount,
		Category:    category,
		AccountID:   input.AccountID,
	}

	s.transactions = append([]domain.Transaction{txn}, s.transactions...)
	s.accounts[idx].Balance = s.accounts[idx].Balance.Add(input.Amount)
	return txn, nil
}

// AddGoalInput is the caller-supplied part of a new goal.
type AddGoalInput struct {
	Name         string          `json:"name" validate:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     domain.Date     `json:"deadline"`
}

// AddGoal creates a goal with CurrentAmount 0 and appends it at the tail
// of the goal sequence.
func (s *Store) AddGoal(input AddGoalInput) (domain.Goal, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Goal{}, fromValidator(err)
	}
	if !input.TargetAmount.IsPositive() {
		return domain.Goal{}, invalidField("targetAmount", "must be positive")
	}
	if input.Deadline.IsZero() {
		return domain.Goal{}, invalidField("deadline", "is required")
	}

	goal := domain.Goal{
		ID:            domain.NewID("goal"),
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      input.Deadline,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, goal)
	return goal, nil
}

// AddTodo creates an uncompleted todo and prepends it.
func (s *Store) AddTodo(task string) (domain.Todo, error) {
	if strings.TrimSpace(task) == "" {
		return domain.Todo{}, invalidField("task", "must not be empty")
	}

	todo := domain.Todo{
		ID:        domain.NewID("todo"),
		Task:      task,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]domain.Todo{todo}, s.todos...)
	return todo, nil
}

// ToggleTodo flips the completed flag of the matching todo. Missing ids
// are a no-op, never an error.
func (s *Store) ToggleTodo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			return
		}
	}
}

// DeleteTodo removes the matching todo. Missing ids are a no-op.
func (s *Store) DeleteTodo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return
		}
	}
}

// AddBillInput is the caller-supplied part of a new bill.
type AddBillInput struct {
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType" validate:"required"`
	FileURL  string `json:"fileUrl" validate:"required"`
}

// AddBill creates a bill dated today and prepends it.
func (s *Store) AddBill(input AddBillInput) (domain.Bill, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Bill{}, fromValidator(err)
	}

	bill := domain.Bill{
		ID:         domain.NewID("bill"),
		FileName:   input.FileName,
		FileType:   input.FileType,
		UploadDate: domain.Today(),
		FileURL:    input.FileURL,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = append([]domain.Bill{bill}, s.bills...)
	return bill, nil
}

// LinkBillToTransaction attaches a bill id to the matching transaction.
// A missing transaction is a no-op; the bill id itself is not checked.
func (s *Store) LinkBillToTransaction(transactionID, billID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == transactionID {
			s.transactions[i].BillID = billID
			return
		}
	}
}

// Account returns the account with the given id, if present.
func (s *Store) Account(id string) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.accountIndex(id)
	if idx < 0 {
		return domain.Account{}, false
	}
	return s.accounts[idx], true
}

// Accounts returns a copy of the account collection.
func (s *Store) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Account(nil), s.accounts...)
}

// Transactions returns a copy of the transaction sequence, newest first.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Transaction(nil), s.transactions...)
}

// Goals returns a copy of the goal collection.
func (s *Store) Goals() []domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Goal(nil), s.goals...)
}

// Investments returns a copy of the investment collection.
func (s *Store) Investments() []domain.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Investment(nil), s.investments...)
}

// Todos returns a copy of the todo sequence, newest first.
func (s *Store) Todos() []domain.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Todo(nil), s.todos...)
}

// Bills returns a copy of the bill sequence, newest first.
func (s *Store) Bills() []domain.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Bill(nil), s.bills...)
}

// Snapshot is the point-in-time read-only view of the store handed to
// the advice pipeline each chat turn. Bills are excluded: the assistant
// reasons over balances and activity, not file uploads.
type Snapshot struct {
	Accounts     []domain.Account     `json:"accounts"`
	Transactions []domain.Transaction `json:"transactions"`
	Goals        []domain.Goal        `json:"goals"`
	Investments  []domain.Investment  `json:"investments"`
	Todos        []domain.Todo        `json:"todos"`
}

// Snapshot captures all advice-relevant collections under one read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Accounts:     append([]domain.Account(nil), s.accounts...),
		Transactions: append([]domain.Transaction(nil), s.transactions...),
		Goals:        append([]domain.Goal(nil), s.goals...),
		Investments:  append([]domain.Investment(nil), s.investments...),
		Todos:        append([]domain.Todo(nil), s.todos...),
	}
}

// accountIndex returns the position of the account with the given id,
// or -1. Callers must hold s.mu.
func (s *Store) accountIndex(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}
