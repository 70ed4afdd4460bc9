package ledger

import "context"

type StubLedgerRepo struct {
	nextId int
	data   []ManualTransaction
}

func NewStubLedgerRepo() *StubLedgerRepo {
	return &StubLedgerRepo{}
}

func (s *StubLedgerRepo) Store(ctx context.Context, transaction ManualTransaction) (int, error) {
	s.nextId++
	transaction.ID = s.nextId
	s.data = append(s.data, transaction)
	return transaction.ID, nil
}

func (s *StubLedgerRepo) Delete(ctx context.Context, transactionId int) (bool, error) {
	for i, transaction := range s.data {
		if transaction.ID == transactionId {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubLedgerRepo) GetAll(ctx context.Context) ([]ManualTransaction, error) {
	out := make([]ManualTransaction, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *StubLedgerRepo) Cleanup() {
	s.data = nil
	s.nextId = 0
}
