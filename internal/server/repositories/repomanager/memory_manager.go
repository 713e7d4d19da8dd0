package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/clients"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/confirmations"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/memory"
)

// MemoryRepositoryManager serves every repository from one in-memory store.
// The DBTX argument is ignored. The manager is also the dbx.Transactor for
// that store.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

var _ dbx.Transactor = (*MemoryRepositoryManager)(nil)

func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return m.store.WithinTx(ctx, fn)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return m.store.Accounts()
}

func (m *MemoryRepositoryManager) Confirmations(dbx.DBTX) confirmations.Repository {
	return m.store.Confirmations()
}

func (m *MemoryRepositoryManager) AccessTokens(dbx.DBTX) accesstokens.Repository {
	return m.store.AccessTokens()
}

func (m *MemoryRepositoryManager) Clients(dbx.DBTX) clients.Repository {
	return m.store.Clients()
}
