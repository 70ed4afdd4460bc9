package exclusion

import "context"

type StubExclusionRepo struct {
	data map[string]struct{}
}

func NewStubExclusionRepo() *StubExclusionRepo {
	return &StubExclusionRepo{data: map[string]struct{}{}}
}

func (s *StubExclusionRepo) Add(ctx context.Context, transactionId string) error {
	s.data[transactionId] = struct{}{}
	return nil
}

func (s *StubExclusionRepo) Remove(ctx context.Context, transactionId string) error {
	delete(s.data, transactionId)
	return nil
}

func (s *StubExclusionRepo) All(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(s.data))
	for id := range s.data {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *StubExclusionRepo) Cleanup() {
	s.data = map[string]struct{}{}
}
