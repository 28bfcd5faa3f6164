package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "Groceries", want: CategoryGroceries},
		{input: "groceries", want: CategoryGroceries},
		{input: "  Income  ", want: CategoryIncome},
		{input: "Other", want: CategoryOther},
		{input: "Gadgets", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInvestmentMath(t *testing.T) {
	inv := Investment{
		Quantity:     decimal.RequireFromString("10"),
		AvgPrice:     decimal.RequireFromString("150.75"),
		CurrentPrice: decimal.RequireFromString("3045.50"),
	}

	if want := decimal.RequireFromString("30455.00"); !inv.MarketValue().Equal(want) {
		t.Errorf("MarketValue = %s, want %s", inv.MarketValue(), want)
	}
	if want := decimal.RequireFromString("1507.50"); !inv.Cost().Equal(want) {
		t.Errorf("Cost = %s, want %s", inv.Cost(), want)
	}
	if want := decimal.RequireFromString("28947.50"); !inv.GainLoss().Equal(want) {
		t.Errorf("GainLoss = %s, want %s", inv.GainLoss(), want)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-07-22")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-07-22"` {
		t.Errorf("marshaled date = %s, want \"2024-07-22\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip changed the date: %s != %s", back, d)
	}
}

func TestDateRejectsMalformedInput(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"22/07/2024"`), &d); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}

func TestNewIDUsesPrefix(t *testing.T) {
	id := NewID("txn")
	if !strings.HasPrefix(id, "txn_") {
		t.Errorf("NewID = %q, want a txn_ prefix", id)
	}
	if id == NewID("txn") {
		t.Error("two generated ids collided")
	}
}

func TestSeedOrdering(t *testing.T) {
	seed := Seed()

	if len(seed.Accounts) != 3 {
		t.Fatalf("seed has %d accounts, want 3", len(seed.Accounts))
	}
	if !seed.Accounts[0].Balance.Equal(decimal.RequireFromString("15210.55")) {
		t.Errorf("acc_1 seed balance = %s", seed.Accounts[0].Balance)
	}

	// Transactions are seeded newest first.
	for i := 1; i < len(seed.Transactions); i++ {
		if seed.Transactions[i].Date.After(seed.Transactions[i-1].Date.Time) {
			t.Errorf("seed transactions out of order at index %d", i)
		}
	}
}
