// Package indy implements the core collaborators with libindy through
// findy-wrapper-go. One Indy value is bound to an open wallet and ledger pool
// and acts as the wallet, the ledger and the anoncreds of one agent.
//
// The wrapper doesn't expose the revocation registry or ATTRIB APIs. Those
// operations return core.ErrUnimplemented.
package indy

import (
	"context"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/findy-network/findy-wrapper-go/dto"
	indypool "github.com/findy-network/findy-wrapper-go/pool"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const walletAlreadyExists = 203

var (
	_ core.Wallet      = (*Indy)(nil)
	_ core.LedgerRead  = (*Indy)(nil)
	_ core.LedgerWrite = (*Indy)(nil)
	_ core.Anoncreds   = (*Indy)(nil)
)

// Config names the wallet and the ledger pool to open.
type Config struct {
	WalletName string
	WalletKey  string
	PoolName   string

	// MasterSecretID is created in the wallet on Open when missing.
	MasterSecretID string

	// SubmitterDID signs ledger reads. Empty means the DID of the first
	// CreateAndStoreDID call.
	SubmitterDID string
}

type Indy struct {
	Wallet         int
	Pool           int
	MasterSecretID string
	SubmitterDID   string
}

// Open creates the wallet if needed and opens it with the ledger pool.
func Open(ctx context.Context, cfg Config) (i *Indy, err error) {
	defer err2.Handle(&err, "indy open %s", cfg.WalletName)

	wcfg := wallet.Config{ID: cfg.WalletName}
	creds := wallet.Credentials{Key: cfg.WalletKey, KeyDerivationMethod: "ARGON2I_MOD"}
	r := <-wallet.Create(wcfg, creds)
	if r.Err() != nil && r.ErrCode() != walletAlreadyExists {
		return nil, core.Backend(r.Err())
	}
	i = &Indy{MasterSecretID: cfg.MasterSecretID, SubmitterDID: cfg.SubmitterDID}
	i.Wallet = try.To1(wait(ctx, wallet.Open(wcfg, creds))).Handle()
	if cfg.PoolName != "" {
		i.Pool = try.To1(wait(ctx, indypool.OpenLedger(cfg.PoolName))).Handle()
	}
	if i.MasterSecretID != "" {
		r := <-anoncreds.ProverCreateMasterSecret(i.Wallet, i.MasterSecretID)
		if r.Err() != nil {
			// it exists already when the wallet was
			glog.V(3).Infof("master secret %s: %v", i.MasterSecretID, r.Err())
		}
	}
	glog.V(1).Infof("indy wallet %s opened (%d), pool (%d)", cfg.WalletName, i.Wallet, i.Pool)
	return i, nil
}

func (i *Indy) Close() (err error) {
	defer err2.Handle(&err, "indy close")

	if i.Pool != 0 {
		try.To1(wait(context.Background(), indypool.CloseLedger(i.Pool)))
		i.Pool = 0
	}
	if i.Wallet != 0 {
		try.To1(wait(context.Background(), wallet.Close(i.Wallet)))
		i.Wallet = 0
	}
	return nil
}

// wait reads the wrapper result. Wrapper errors are backend errors.
func wait(ctx context.Context, ch findy.Channel) (dto.Result, error) {
	select {
	case r := <-ch:
		if err := r.Err(); err != nil {
			return r, core.Backend(err)
		}
		return r, nil
	case <-ctx.Done():
		return dto.Result{}, ctx.Err()
	}
}

func unimplemented(op string) error {
	return core.Errorf(core.ErrUnimplemented, "indy: %s", op)
}
