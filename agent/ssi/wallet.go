// Package ssi is the local key wallet of the agent. It implements core.Wallet
// with ed25519 keys. Packing is delegated to the AFGO packers of package
// packager. Keys are persisted to api.BucketKey when a store is given.
package ssi

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/findy-network/findy-exchange/agent/packager"
	"github.com/findy-network/findy-exchange/agent/sec"
	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

type keyRecord struct {
	DID  string `json:"did"`
	Seed string `json:"seed"`
}

type Wallet struct {
	l     sync.RWMutex
	keys  sec.Keys
	dids  map[string]string // DID to verkey
	store api.Store
	pckr  *packager.Packager
}

// NewWallet returns the wallet with keys loaded from the store. A nil store
// gives an in-memory wallet.
func NewWallet(store api.Store) (w *Wallet, err error) {
	defer err2.Handle(&err, "new wallet")

	w = &Wallet{
		keys:  make(sec.Keys),
		dids:  make(map[string]string),
		store: store,
		pckr:  try.To1(packager.New(nil)),
	}
	if store == nil {
		return w, nil
	}
	for _, data := range try.To1(store.GetAll()) {
		var r keyRecord
		try.To(json.Unmarshal(data, &r))
		try.To1(w.add(r.DID, ed25519.NewKeyFromSeed(try.To1(base58.Decode(r.Seed)))))
	}
	glog.V(3).Infof("wallet loaded with %d keys", len(w.keys))
	return w, nil
}

// CreateAndStoreDID creates a key pair and its Indy style DID, which is the
// first 16 bytes of the verkey. The seed is 32 bytes, empty seed gives a
// random key.
func (w *Wallet) CreateAndStoreDID(_ context.Context, seed string) (did, verkey string, err error) {
	defer err2.Handle(&err, "create DID")

	s := []byte(seed)
	switch len(s) {
	case 0:
		s = make([]byte, ed25519.SeedSize)
		try.To1(rand.Read(s))
	case ed25519.SeedSize:
	default:
		return "", "", fmt.Errorf("seed length %d, must be %d", len(s), ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(s)
	pub := priv.Public().(ed25519.PublicKey)
	did = base58.Encode(pub[:16])

	if w.store != nil {
		rec := try.To1(json.Marshal(keyRecord{DID: did, Seed: base58.Encode(s)}))
		try.To(w.store.Put(did, rec))
	}
	verkey = try.To1(w.add(did, priv))
	glog.V(1).Infoln("new DID", did)
	return did, verkey, nil
}

func (w *Wallet) add(did string, priv ed25519.PrivateKey) (string, error) {
	if err := w.pckr.AddKey(priv); err != nil {
		return "", err
	}
	w.l.Lock()
	defer w.l.Unlock()

	verkey := w.keys.Add(priv)
	w.dids[did] = verkey
	return verkey, nil
}

// PrivateKey implements sec.KeyFinder.
func (w *Wallet) PrivateKey(verkey string) (ed25519.PrivateKey, bool) {
	w.l.RLock()
	defer w.l.RUnlock()

	return w.keys.PrivateKey(verkey)
}

// VerKey returns verkey of our DID.
func (w *Wallet) VerKey(did string) (string, bool) {
	w.l.RLock()
	defer w.l.RUnlock()

	vk, ok := w.dids[did]
	return vk, ok
}

func (w *Wallet) Sign(_ context.Context, verkey string, msg []byte) ([]byte, error) {
	priv, ok := w.PrivateKey(verkey)
	if !ok {
		return nil, fmt.Errorf("sign: %w", errUnknownKey(verkey))
	}
	return ed25519.Sign(priv, msg), nil
}

func (w *Wallet) PackMessage(_ context.Context, senderKey string, recipientKeys []string, msg []byte) ([]byte, error) {
	if senderKey != "" {
		if _, ok := w.PrivateKey(senderKey); !ok {
			return nil, fmt.Errorf("pack: %w", errUnknownKey(senderKey))
		}
	}
	return w.pckr.Pack(senderKey, recipientKeys, msg)
}

// UnpackMessage opens the envelope with any of our keys. All failures are
// core.ErrInvalidJSON.
func (w *Wallet) UnpackMessage(_ context.Context, msg []byte) (u *core.Unpacked, err error) {
	defer err2.Handle(&err, func(err error) error {
		return fmt.Errorf("unpack: %w", core.Kind(core.ErrInvalidJSON, err))
	})

	data, senderKey, recipientKey := try.To3(w.pckr.Unpack(msg))
	glog.V(7).Infof("unpacked envelope for %s", recipientKey)
	return &core.Unpacked{
		Message:      data,
		SenderKey:    senderKey,
		RecipientKey: recipientKey,
	}, nil
}

func errUnknownKey(verkey string) error {
	return errors.New("key not found: " + verkey)
}
