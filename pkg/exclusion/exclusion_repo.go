package exclusion

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type ExclusionRepo interface {
	// Add inserts a mark for the transaction id. Adding an existing mark is
	// a no-op.
	Add(ctx context.Context, transactionId string) error
	// Remove deletes the mark for the transaction id. Removing a missing
	// mark is a no-op.
	Remove(ctx context.Context, transactionId string) error
	// All returns the ids of all excluded transactions as a membership set.
	All(ctx context.Context) (map[string]struct{}, error)
}

type ExclusionRepoImpl struct {
	db *sql.DB
}

func NewExclusionRepo(db *sql.DB) *ExclusionRepoImpl {
	return &ExclusionRepoImpl{db: db}
}

func (e *ExclusionRepoImpl) Add(ctx context.Context, transactionId string) error {
	query := `INSERT INTO excluded_transaction (transaction_id) VALUES ($1)
				ON CONFLICT (transaction_id) DO NOTHING`
	if _, err := e.db.ExecContext(ctx, query, transactionId); err != nil {
		err := fmt.Errorf("could not store exclusion mark: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (e *ExclusionRepoImpl) Remove(ctx context.Context, transactionId string) error {
	query := "DELETE FROM excluded_transaction WHERE transaction_id = $1"
	if _, err := e.db.ExecContext(ctx, query, transactionId); err != nil {
		err := fmt.Errorf("could not remove exclusion mark: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (e *ExclusionRepoImpl) All(ctx context.Context) (map[string]struct{}, error) {
	rows, err := e.db.QueryContext(ctx, "SELECT transaction_id FROM excluded_transaction")
	if err != nil {
		err := fmt.Errorf("could not query exclusion marks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	excluded := make(map[string]struct{})
	for rows.Next() {
		var transactionId string
		if err := rows.Scan(&transactionId); err != nil {
			err := fmt.Errorf("could not scan exclusion mark: %w", err)
			log.Error(err)
			return nil, err
		}
		excluded[transactionId] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return excluded, nil
}
