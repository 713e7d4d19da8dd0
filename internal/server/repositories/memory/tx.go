package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
)

type undoKey struct{}

type undoLog struct {
	mu  sync.Mutex
	fns []func()
}

// WithinTx runs fn as a unit of work. When fn fails or panics, the writes it
// made through the store's repositories are reverted in reverse order.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	l := &undoLog{}
	ctx = context.WithValue(ctx, undoKey{}, l)

	defer func() {
		if p := recover(); p != nil {
			s.rollback(l)
			panic(p)
		}
		if err != nil {
			s.rollback(l)
		}
	}()

	return fn(ctx, nil)
}

func (s *Store) rollback(l *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.fns) - 1; i >= 0; i-- {
		l.fns[i]()
	}
	l.fns = nil
}

// onRollback registers undo for the unit of work carried by ctx, if any.
// undo runs with s.mu held.
func onRollback(ctx context.Context, undo func()) {
	l, ok := ctx.Value(undoKey{}).(*undoLog)
	if !ok {
		return
	}
	l.mu.Lock()
	l.fns = append(l.fns, undo)
	l.mu.Unlock()
}
