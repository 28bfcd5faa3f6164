package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedData is the initial contents of the finance store for a session.
type SeedData struct {
	Accounts     []Account
	Transactions []Transaction
	Goals        []Goal
	Investments  []Investment
	Todos        []Todo
	Bills        []Bill
}

func mustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Seed returns the demo data set the dashboard starts from. Transactions
// are ordered newest first; that ordering is an invariant the store
// maintains for every later insert.
func Seed() SeedData {
	return SeedData{
		Accounts: []Account{
			{ID: "acc_1", Name: "Main Checking", Type: AccountTypeChecking, Balance: amt("15210.55"), Currency: "INR"},
			{ID: "acc_2", Name: "High-Yield Savings", Type: AccountTypeSavings, Balance: amt("25400.00"), Currency: "INR"},
			{ID: "acc_3", Name: "Travel Rewards Card", Type: AccountTypeCreditCard, Balance: amt("-850.21"), Currency: "INR"},
		},
		Transactions: []Transaction{
			{ID: "txn_1", Date: mustDate("2024-07-22"), Description: "Salary Deposit", Amount: amt("3500.00"), Category: CategoryIncome, AccountID: "acc_1"},
			{ID: "txn_2", Date: mustDate("2024-07-21"), Description: "Grocery", Amount: amt("-124.50"), Category: CategoryGroceries, AccountID: "acc_3", BillID: "bill_1"},
			{ID: "txn_3", Date: mustDate("2024-07-20"), Description: "Electricity", Amount: amt("-75.00"), Category: CategoryUtilities, AccountID: "acc_1"},
			{ID: "txn_4", Date: mustDate("2024-07-20"), Description: "Petrol", Amount: amt("-45.30"), Category: CategoryTransport, AccountID: "acc_3"},
			{ID: "txn_5", Date: mustDate("2024-07-19"), Description: "Movie Tickets", Amount: amt("-32.00"), Category: CategoryEntertainment, AccountID: "acc_3"},
			{ID: "txn_6", Date: mustDate("2024-07-18"), Description: "Transfer to Savings", Amount: amt("-500.00"), Category: CategoryOther, AccountID: "acc_1"},
			{ID: "txn_7", Date: mustDate("2024-07-15"), Description: "Salary Deposit", Amount: amt("3500.00"), Category: CategoryIncome, AccountID: "acc_1"},
			{ID: "txn_8", Date: mustDate("2024-06-28"), Description: "Restaurant", Amount: amt("-88.75"), Category: CategoryEntertainment, AccountID: "acc_3"},
			{ID: "txn_9", Date: mustDate("2024-06-25"), Description: "Rent Payment", Amount: amt("-1800.00"), Category: CategoryUtilities, AccountID: "acc_1"},
			{ID: "txn_10", Date: mustDate("2024-06-22"), Description: "School fees", Amount: amt("-1000.00"), Category: CategoryGroceries, AccountID: "acc_3"},
		},
		Goals: []Goal{
			{ID: "goal_1", Name: "Trip to Kochi", TargetAmount: amt("3000"), CurrentAmount: amt("1000"), Deadline: mustDate("2026-05-01")},
			{ID: "goal_2", Name: "New Laptop", TargetAmount: amt("2500"), CurrentAmount: amt("2100"), Deadline: mustDate("2025-12-01")},
			{ID: "goal_3", Name: "New Headphones", TargetAmount: amt("10000"), CurrentAmount: amt("7500"), Deadline: mustDate("2025-10-01")},
			{ID: "goal_4", Name: "New car", TargetAmount: amt("100000"), CurrentAmount: amt("57000"), Deadline: mustDate("2026-12-01")},
		},
		Investments: []Investment{
			{ID: "inv_1", Symbol: "TCS", Name: "Tata", Quantity: amt("10"), AvgPrice: amt("150.75"), CurrentPrice: amt("3045.50")},
			{ID: "inv_2", Symbol: "infosys", Name: "infosys Inc.", Quantity: amt("5"), AvgPrice: amt("200.00"), CurrentPrice: amt("185.20")},
			{ID: "inv_3", Symbol: "VI", Name: "Vodafone idea", Quantity: amt("20"), AvgPrice: amt("450.10"), CurrentPrice: amt("502.80")},
		},
		Todos: []Todo{
			{ID: "todo_1", Task: "Save 2000 this month", Completed: false, CreatedAt: time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC)},
			{ID: "todo_2", Task: "Review monthly budget", Completed: false, CreatedAt: time.Date(2025, 10, 21, 11, 0, 0, 0, time.UTC)},
			{ID: "todo_3", Task: "Invest in TCS", Completed: true, CreatedAt: time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)},
		},
		Bills: []Bill{
			{ID: "bill_1", FileName: "receipt_groceries.pdf", FileType: "application/pdf", UploadDate: mustDate("2024-07-21"), FileURL: "#"},
		},
	}
}
