package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.Get).Methods("GET")
	r.HandleFunc("/api/spending/recompute", deps.DashboardHandler.Recompute).Methods("POST")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Manual transactions
	r.HandleFunc("/api/transactions/manual", deps.LedgerHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transactions/manual", deps.LedgerHandler.Add).Methods("POST")
	r.HandleFunc("/api/transactions/manual/{id}", deps.LedgerHandler.Delete).Methods("DELETE")

	// Exclusion marks on remote transactions
	r.HandleFunc("/api/transactions/{transactionId}/exclusion", deps.ExclusionHandler.Exclude).Methods("PUT")
	r.HandleFunc("/api/transactions/{transactionId}/exclusion", deps.ExclusionHandler.Include).Methods("DELETE")
	r.HandleFunc("/api/exclusions", deps.ExclusionHandler.GetAll).Methods("GET")
}
