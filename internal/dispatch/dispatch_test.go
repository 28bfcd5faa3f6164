package dispatch

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhanitra/dhanitra/internal/domain"
	"github.com/dhanitra/dhanitra/internal/store"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *store.Store) {
	t.Helper()
	st := store.New(domain.Seed())
	d, err := New(st, "acc_1")
	if err != nil {
		t.Fatalf("New dispatcher failed: %v", err)
	}
	return d, st
}

func mustEnvelope(t *testing.T, s string) Envelope {
	t.Helper()
	env, err := ParseEnvelope(s)
	if err != nil {
		t.Fatalf("ParseEnvelope(%q) failed: %v", s, err)
	}
	return env
}

func TestNewRejectsUnknownDefaultAccount(t *testing.T) {
	st := store.New(domain.Seed())
	if _, err := New(st, "acc_999"); err == nil {
		t.Error("expected an error for a default account that does not exist")
	}
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: `{"action":"addTodo","payload":{"task":"X"}}`},
		{name: "plain text", input: "You spent $50 on groceries this month.", wantErr: true},
		{name: "missing action", input: `{"payload":{"task":"X"}}`, wantErr: true},
		{name: "missing payload", input: `{"action":"addTodo"}`, wantErr: true},
		{name: "json array", input: `[{"action":"addTodo"}]`, wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelope(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseEnvelope error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDispatchAddTransactionDefaults(t *testing.T) {
	d, st := newTestDispatcher(t)

	env := mustEnvelope(t, `{"action":"addTransaction","payload":{"description":"Coffee","amount":-4.5}}`)
	if err := d.Dispatch(env); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	txn := st.Transactions()[0]
	if txn.Category != domain.CategoryOther {
		t.Errorf("missing category defaulted to %q, want Other", txn.Category)
	}
	if txn.AccountID != "acc_1" {
		t.Errorf("missing accountId defaulted to %q, want acc_1", txn.AccountID)
	}
	if !txn.Amount.Equal(decimal.RequireFromString("-4.5")) {
		t.Errorf("amount = %s, want -4.5", txn.Amount)
	}
}

func TestDispatchAddTransactionExplicitAccount(t *testing.T) {
	d, st := newTestDispatcher(t)

	env := mustEnvelope(t, `{"action":"addTransaction","payload":{"description":"Petrol","amount":-45.3,"category":"Transport","accountId":"acc_3"}}`)
	if err := d.Dispatch(env); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	txn := st.Transactions()[0]
	if txn.AccountID != "acc_3" {
		t.Errorf("accountId = %q, want acc_3", txn.AccountID)
	}
	if txn.Category != domain.CategoryTransport {
		t.Errorf("category = %q, want Transport", txn.Category)
	}
}

func TestDispatchAddGoalDeadlineDefault(t *testing.T) {
	d, st := newTestDispatcher(t)

	env := mustEnvelope(t, `{"action":"addGoal","payload":{"name":"Bicycle","targetAmount":800}}`)
	if err := d.Dispatch(env); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	goals := st.Goals()
	goal := goals[len(goals)-1]
	days := goal.Deadline.Sub(time.Now()) / (24 * time.Hour)
	if days < 28 || days > 31 {
		t.Errorf("defaulted deadline %s is not ~30 days out", goal.Deadline)
	}
	if !goal.CurrentAmount.IsZero() {
		t.Errorf("goal CurrentAmount = %s, want 0", goal.CurrentAmount)
	}
}

func TestDispatchAddGoalExplicitDeadline(t *testing.T) {
	d, st := newTestDispatcher(t)

	env := mustEnvelope(t, `{"action":"addGoal","payload":{"name":"Bicycle","targetAmount":800,"deadline":"2027-01-15"}}`)
	if err := d.Dispatch(env); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	goals := st.Goals()
	if got := goals[len(goals)-1].Deadline.String(); got != "2027-01-15" {
		t.Errorf("deadline = %s, want 2027-01-15", got)
	}
}

func TestDispatchAddTodo(t *testing.T) {
	d, st := newTestDispatcher(t)

	env := mustEnvelope(t, `{"action":"addTodo","payload":{"task":"review insurance"}}`)
	if err := d.Dispatch(env); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	todo := st.Todos()[0]
	if todo.Task != "review insurance" {
		t.Errorf("task = %q, want 'review insurance'", todo.Task)
	}
	if todo.Completed {
		t.Error("new todo should start uncompleted")
	}
}

func TestDispatchRejections(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{name: "unknown action", env: `{"action":"deleteAccount","payload":{"id":"acc_1"}}`},
		{name: "transaction without amount", env: `{"action":"addTransaction","payload":{"description":"Coffee"}}`},
		{name: "transaction with bad category", env: `{"action":"addTransaction","payload":{"description":"Coffee","amount":-1,"category":"Gadgets"}}`},
		{name: "goal without target", env: `{"action":"addGoal","payload":{"name":"Bicycle"}}`},
		{name: "goal with malformed deadline", env: `{"action":"addGoal","payload":{"name":"Bicycle","targetAmount":800,"deadline":"next month"}}`},
		{name: "todo without task", env: `{"action":"addTodo","payload":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, st := newTestDispatcher(t)
			txns, goals, todos := len(st.Transactions()), len(st.Goals()), len(st.Todos())

			env := mustEnvelope(t, tt.env)
			if err := d.Dispatch(env); err == nil {
				t.Fatal("expected Dispatch to reject the envelope")
			}

			if len(st.Transactions()) != txns || len(st.Goals()) != goals || len(st.Todos()) != todos {
				t.Error("rejected envelope mutated the store")
			}
		})
	}
}
