package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/clients"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/confirmations"
)

// RepositoryManager vends repositories bound to a DBTX (a *sql.DB outside a
// transaction or a *sql.Tx inside dbx.Transactor.WithinTx).
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Confirmations(db dbx.DBTX) confirmations.Repository
	AccessTokens(db dbx.DBTX) accesstokens.Repository
	Clients(db dbx.DBTX) clients.Repository
}
