package memstore

import "context"

type txKey struct{}

// TxManager runs functions in serialized transactions over the Store.
// Nested calls join the outer transaction.
type TxManager struct {
	s *Store

	commits   int
	rollbacks int
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.data.clone()
	m.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.data = snapshot
		m.s.mu.Unlock()
		m.rollbacks++
		return err
	}

	m.commits++
	return nil
}

// Rollbacks returns the number of transactions that were rolled back
func (m *TxManager) Rollbacks() int {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	return m.rollbacks
}

// Commits returns the number of committed transactions
func (m *TxManager) Commits() int {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	return m.commits
}
