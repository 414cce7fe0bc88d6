package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Cash-flow document
	r.HandleFunc("/api/cashflow", deps.AccountHandler.GetData).Methods("GET")
	r.HandleFunc("/api/cashflow", deps.AccountHandler.ReplaceData).Methods("PUT")
	r.HandleFunc("/api/cashflow/settings", deps.AccountHandler.UpdateSettings).Methods("PUT")

	// Projection
	r.HandleFunc("/api/cashflow/month/{month}", deps.AccountHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/cashflow/month/{month}/stats", deps.AccountHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/cashflow/balance/today", deps.AccountHandler.GetTodaysBalance).Methods("GET")
	r.HandleFunc("/api/cashflow/timeline", deps.AccountHandler.GetTimeline).Queries("from", "{from}").Methods("GET")

	// Items
	r.HandleFunc("/api/cashflow/income", deps.AccountHandler.AddIncome).Methods("POST")
	r.HandleFunc("/api/cashflow/income/{itemId}", deps.AccountHandler.UpdateIncome).Methods("PUT")
	r.HandleFunc("/api/cashflow/income/{itemId}", deps.AccountHandler.DeleteIncome).Methods("DELETE")
	r.HandleFunc("/api/cashflow/expense", deps.AccountHandler.AddExpense).Methods("POST")
	r.HandleFunc("/api/cashflow/expense/{itemId}", deps.AccountHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/cashflow/expense/{itemId}", deps.AccountHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/cashflow/expense/{itemId}", deps.AccountHandler.DeleteExpense).Methods("DELETE")

	// Credit cards
	r.HandleFunc("/api/cashflow/expense/{expenseId}/card", deps.AccountHandler.GetCreditCardStatus).Queries("month", "{month}").Methods("GET")
	r.HandleFunc("/api/cashflow/expense/{expenseId}/card/impact", deps.AccountHandler.GetPaymentImpact).Queries("month", "{month}", "amount", "{amount}").Methods("GET")

	// Instance overrides
	r.HandleFunc("/api/cashflow/{kind:income|expense}/{itemId}/override", deps.AccountHandler.SaveOverride).Methods("PUT")
	r.HandleFunc("/api/cashflow/{kind:income|expense}/{itemId}/override/{date}", deps.AccountHandler.RemoveOverride).Methods("DELETE")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
}
