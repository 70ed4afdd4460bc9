package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const timeFormat = time.RFC3339Nano

type LedgerRepo interface {
	Store(ctx context.Context, transaction ManualTransaction) (int, error)
	Delete(ctx context.Context, transactionId int) (bool, error)
	// GetAll returns transactions in insertion (id) order.
	GetAll(ctx context.Context) ([]ManualTransaction, error)
}

type LedgerRepoImpl struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepoImpl {
	return &LedgerRepoImpl{db: db}
}

func (li *LedgerRepoImpl) Store(ctx context.Context, transaction ManualTransaction) (int, error) {
	query := `INSERT INTO manual_transaction (amount, occurred_at, description)
				VALUES ($1, $2, $3) RETURNING id`

	var id int
	err := li.db.QueryRowContext(ctx, query,
		transaction.Amount,
		transaction.OccurredAt.Format(timeFormat),
		transaction.Description,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store manual transaction: %w", err)
		log.Error(err)
		return 0, err
	}

	return id, nil
}

func (li *LedgerRepoImpl) Delete(ctx context.Context, transactionId int) (bool, error) {
	query := "DELETE FROM manual_transaction WHERE id = $1"
	result, err := li.db.ExecContext(ctx, query, transactionId)
	if err != nil {
		err := fmt.Errorf("could not delete manual transaction: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (li *LedgerRepoImpl) GetAll(ctx context.Context) ([]ManualTransaction, error) {
	query := "SELECT id, amount, occurred_at, description FROM manual_transaction ORDER BY id"
	rows, err := li.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query manual transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []ManualTransaction
	for rows.Next() {
		var transaction ManualTransaction
		var occurredAt string
		if err := rows.Scan(&transaction.ID, &transaction.Amount, &occurredAt, &transaction.Description); err != nil {
			err := fmt.Errorf("could not scan manual transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		parsed, err := time.Parse(timeFormat, occurredAt)
		if err != nil {
			err := fmt.Errorf("could not parse transaction timestamp: %w", err)
			log.Error(err)
			return nil, err
		}
		transaction.OccurredAt = parsed
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return transactions, nil
}
