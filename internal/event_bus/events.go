package event_bus

const (
	BudgetCreatedEvent    EventType = "budget.created"
	BudgetDeletedEvent    EventType = "budget.deleted"
	LedgerChangedEvent    EventType = "ledger.changed"
	ExclusionChangedEvent EventType = "exclusion.changed"
)

type BudgetCreated struct {
	BudgetID int
}

type BudgetDeleted struct {
	BudgetID int
}

// LedgerChanged is published when a manual transaction is added or removed.
type LedgerChanged struct {
	TransactionID int
}

// ExclusionChanged is published when a remote transaction is excluded from or
// included back into spend totals.
type ExclusionChanged struct {
	TransactionID string
	Excluded      bool
}
