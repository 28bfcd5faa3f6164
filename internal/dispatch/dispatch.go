// Package dispatch maps structured action envelopes produced by the
// advice pipeline onto finance store mutations. Parsing is strict and
// reject-by-default: unknown actions or missing required payload fields
// are errors, and the caller falls back to the display-only path.
// Partial action execution never happens.
package dispatch

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhanitra/dhanitra/internal/domain"
	"github.com/dhanitra/dhanitra/internal/store"
)

// Action identifies one supported store mutation.
type Action string

const (
	ActionAddTransaction Action = "addTransaction"
	ActionAddGoal        Action = "addGoal"
	ActionAddTodo        Action = "addTodo"
)

// defaultGoalHorizon is applied when an addGoal payload omits the deadline.
const defaultGoalHorizon = 30 * 24 * time.Hour

// Envelope is the {action, payload} record emitted by the model.
type Envelope struct {
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ParseEnvelope strictly decodes s as an action envelope. It fails when
// s is not a JSON object or either field is absent; it does not attempt
// to salvage anything from partial matches.
func ParseEnvelope(s string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return Envelope{}, fmt.Errorf("parse action envelope: %w", err)
	}
	if env.Action == "" || len(env.Payload) == 0 {
		return Envelope{}, fmt.Errorf("parse action envelope: missing action or payload")
	}
	return env, nil
}

// Dispatcher invokes exactly one store mutation per envelope.
//
// The account for addTransaction payloads that name none is the
// configured default, not an arbitrary pick from the collection; the
// default is checked against the store at construction time.
type Dispatcher struct {
	store            *store.Store
	defaultAccountID string
}

// New creates a dispatcher. defaultAccountID must resolve to an
// existing account in st.
func New(st *store.Store, defaultAccountID string) (*Dispatcher, error) {
	if _, ok := st.Account(defaultAccountID); !ok {
		return nil, fmt.Errorf("dispatch: default account %q does not exist", defaultAccountID)
	}
	return &Dispatcher{store: st, defaultAccountID: defaultAccountID}, nil
}

type transactionPayload struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId"`
}

type goalPayload struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     string          `json:"deadline"`
}

type todoPayload struct {
	Task string `json:"task"`
}

// Dispatch applies the envelope to the store. Defaults preserved from
// the reference behavior: a missing transaction category becomes
// "Other" and a missing goal deadline becomes 30 days from now.
func (d *Dispatcher) Dispatch(env Envelope) error {
	switch env.Action {
	case ActionAddTransaction:
		var p transactionPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("dispatch %s: decode payload: %w", env.Action, err)
		}
		if p.Category == "" {
			p.Category = string(domain.CategoryOther)
		}
		if p.AccountID == "" {
			p.AccountID = d.defaultAccountID
		}
		_, err := d.store.AddTransaction(store.AddTransactionInput{
			Description: p.Description,
			Amount:      p.Amount,
			Category:    domain.Category(p.Category),
			AccountID:   p.AccountID,
		})
		if err != nil {
			return fmt.Errorf("dispatch %s: %w", env.Action, err)
		}
		return nil

	case ActionAddGoal:
		var p goalPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("dispatch %s: decode payload: %w", env.Action, err)
		}
		deadline := domain.NewDate(time.Now().Add(defaultGoalHorizon))
		if p.Deadline != "" {
			parsed, err := domain.ParseDate(p.Deadline)
			if err != nil {
				return fmt.Errorf("dispatch %s: %w", env.Action, err)
			}
			deadline = parsed
		}
		_, err := d.store.AddGoal(store.AddGoalInput{
			Name:         p.Name,
			TargetAmount: p.TargetAmount,
			Deadline:     deadline,
		})
		if err != nil {
			return fmt.Errorf("dispatch %s: %w", env.Action, err)
		}
		return nil

	case ActionAddTodo:
		var p todoPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("dispatch %s: decode payload: %w", env.Action, err)
		}
		if _, err := d.store.AddTodo(p.Task); err != nil {
			return fmt.Errorf("dispatch %s: %w", env.Action, err)
		}
		return nil

	default:
		return fmt.Errorf("dispatch: unsupported action %q", env.Action)
	}
}
