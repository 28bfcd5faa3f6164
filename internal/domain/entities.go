package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "Checking"
	AccountTypeSavings    AccountType = "Savings"
	AccountTypeCreditCard AccountType = "Credit Card"
)

// Account is a bank or card account. The balance is mutated only as a
// side effect of creating a transaction against it.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// Category classifies a transaction.
type Category string

const (
	CategoryGroceries     Category = "Groceries"
	CategoryUtilities     Category = "Utilities"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// ParseCategory maps a free-form string onto a known Category.
// Matching is case-insensitive; unknown names are rejected.
func ParseCategory(s string) (Category, error) {
	for _, c := range []Category{
		CategoryGroceries,
		CategoryUtilities,
		CategoryTransport,
		CategoryEntertainment,
		CategoryIncome,
		CategoryOther,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Transaction is one money movement against an account.
// Amount is signed: positive for money IN, negative for money OUT.
type Transaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	AccountID   string          `json:"accountId"`
	BillID      string          `json:"billId,omitempty"`
}

// Goal is a savings target. CurrentAmount is manually tracked and is
// not reconciled against transactions.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      Date            `json:"deadline"`
}

// Investment is a held position in a security.
type Investment struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

// MarketValue returns quantity × current price.
func (i Investment) MarketValue() decimal.Decimal {
	return i.Quantity.Mul(i.CurrentPrice)
}

// Cost returns quantity × average purchase price.
func (i Investment) Cost() decimal.Decimal {
	return i.Quantity.Mul(i.AvgPrice)
}

// GainLoss returns market value minus cost.
func (i Investment) GainLoss() decimal.Decimal {
	return i.MarketValue().Sub(i.Cost())
}

// Todo is one to-do list entry.
type Todo struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bill is an uploaded receipt or bill document. FileURL is an opaque
// reference into whatever blob store holds the bytes.
type Bill struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	UploadDate Date   `json:"uploadDate"`
	FileURL    string `json:"fileUrl"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn entry in a chat transcript. Transcripts are
// session-scoped and never persisted.
type ChatMessage struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// NewID returns a fresh entity id with the given prefix, e.g. "txn".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
