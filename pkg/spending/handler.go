package spending

import (
	"encoding/json"
	"net/http"

	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/exclusion"
	"github.com/centavo/centavo/pkg/wise"
	log "github.com/sirupsen/logrus"
)

// recentTransactionsLimit caps the feed preview on the dashboard.
const recentTransactionsLimit = 5

type TransactionDTO struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Excluded bool   `json:"excluded"`
}

type DashboardDTO struct {
	Balance          *float64           `json:"balance"`
	BalanceAvailable bool               `json:"balanceAvailable"`
	Budgets          []budget.BudgetDTO `json:"budgets"`
	Transactions     []TransactionDTO   `json:"transactions"`
}

type DashboardHandler struct {
	budgetService    budget.BudgetService
	spendingService  Service
	exclusionService exclusion.Service
	feed             wise.Client
}

func NewDashboardHandler(
	budgetService budget.BudgetService,
	spendingService Service,
	exclusionService exclusion.Service,
	feed wise.Client,
) *DashboardHandler {
	return &DashboardHandler{
		budgetService:    budgetService,
		spendingService:  spendingService,
		exclusionService: exclusionService,
		feed:             feed,
	}
}

// Get renders the dashboard: budgets with up-to-date spent amounts, the most
// recent remote transactions, and the account balance. Remote failures
// degrade the page (stale spent amounts, empty feed, unavailable balance)
// instead of failing it.
func (handler *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if err := handler.budgetService.EnsureCurrentPeriods(ctx); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := handler.spendingService.RecomputeDirty(ctx); err != nil {
		log.Warnf("recompute failed, serving stored spent amounts: %v", err)
	}

	budgets, err := handler.budgetService.GetAll(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := DashboardDTO{
		Budgets:      make([]budget.BudgetDTO, 0, len(budgets)),
		Transactions: []TransactionDTO{},
	}
	for _, b := range budgets {
		dto.Budgets = append(dto.Budgets, budget.BudgetToDTO(b))
	}

	balance, err := handler.feed.FetchBalance(ctx)
	if err != nil {
		log.Warnf("balance unavailable: %v", err)
	} else if balance != nil {
		dto.Balance = balance
		dto.BalanceAvailable = true
	}

	transactions, err := handler.feed.FetchTransactions(ctx)
	if err != nil {
		log.Warnf("transaction feed unavailable: %v", err)
	} else {
		excluded, err := handler.exclusionService.All(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(transactions) > recentTransactionsLimit {
			transactions = transactions[:recentTransactionsLimit]
		}
		for _, transaction := range transactions {
			_, isExcluded := excluded[transaction.ID]
			dto.Transactions = append(dto.Transactions, TransactionDTO{
				ID:       transaction.ID,
				Amount:   transaction.Amount,
				Title:    transaction.Title,
				Date:     transaction.CreatedOn,
				Excluded: isExcluded,
			})
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Recompute forces a full recomputation of every budget.
func (handler *DashboardHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	if err := handler.spendingService.RecomputeAll(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
