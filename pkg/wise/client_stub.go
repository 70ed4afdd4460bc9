package wise

import "context"

type StubClient struct {
	Transactions []Transaction
	Balance      *float64
	FetchErr     error
	BalanceErr   error

	FetchCalls int
}

func (s *StubClient) FetchTransactions(ctx context.Context) ([]Transaction, error) {
	s.FetchCalls++
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return s.Transactions, nil
}

func (s *StubClient) FetchBalance(ctx context.Context) (*float64, error) {
	if s.BalanceErr != nil {
		return nil, s.BalanceErr
	}
	return s.Balance, nil
}
