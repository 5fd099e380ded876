// Package packager packs and unpacks legacy DIDComm v1 envelopes with AFGO's
// legacy authcrypt and anoncrypt packers. The packers read private keys from
// an AFGO local KMS that the wallet imports its ed25519 keys to.
package packager

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/agent/storage/mem"
	"github.com/golang/glog"
	cryptoapi "github.com/hyperledger/aries-framework-go/pkg/crypto"
	"github.com/hyperledger/aries-framework-go/pkg/crypto/tinkcrypto"
	"github.com/hyperledger/aries-framework-go/pkg/didcomm/packager"
	"github.com/hyperledger/aries-framework-go/pkg/didcomm/packer"
	anonlegacy "github.com/hyperledger/aries-framework-go/pkg/didcomm/packer/legacy/anoncrypt"
	legacy "github.com/hyperledger/aries-framework-go/pkg/didcomm/packer/legacy/authcrypt"
	"github.com/hyperledger/aries-framework-go/pkg/didcomm/transport"
	"github.com/hyperledger/aries-framework-go/pkg/doc/util/jwkkid"
	"github.com/hyperledger/aries-framework-go/pkg/framework/aries/api/vdr"
	"github.com/hyperledger/aries-framework-go/pkg/kms"
	"github.com/hyperledger/aries-framework-go/pkg/kms/localkms"
	"github.com/hyperledger/aries-framework-go/pkg/secretlock"
	"github.com/hyperledger/aries-framework-go/pkg/secretlock/noop"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

const bucketKMS = "kms"

// Packager implements both packer.Provider and packager.Provider of AFGO.
type Packager struct {
	packager *packager.Packager
	packers  []packer.Packer
	crypto   cryptoapi.Crypto
	kms      *localkms.LocalKMS
}

// New returns packager with its own KMS. A nil store keeps the key sets in
// memory.
func New(store api.Store) (p *Packager, err error) {
	defer err2.Handle(&err, "packager new")

	if store == nil {
		store = try.To1(mem.New().OpenStore(api.BucketKey))
	}
	p = new(Packager)
	p.kms = try.To1(localkms.New("local-lock://primary/"+bucketKMS+"/", kmsProvider{
		store: keyStore{store},
		lock:  &noop.NoLock{},
	}))
	p.crypto = try.To1(tinkcrypto.New())

	// authcrypt is the primary, anoncrypt is used when there's no sender
	p.packers = append(p.packers, legacy.New(p), anonlegacy.New(p))
	p.packager = try.To1(packager.New(p))
	return p, nil
}

// AddKey imports the ed25519 key to the KMS. Adding the same key twice is
// ok.
func (p *Packager) AddKey(priv ed25519.PrivateKey) (err error) {
	defer err2.Handle(&err, "add key")

	kid := try.To1(keyID(priv.Public().(ed25519.PublicKey)))
	if _, err := p.kms.Get(kid); err == nil {
		return nil
	}
	try.To2(p.kms.ImportPrivateKey(priv, kms.ED25519Type, kms.WithKeyID(kid)))
	glog.V(5).Infoln("key imported to KMS:", kid)
	return nil
}

// Pack encrypts msg to the recipient verkeys. Empty senderKey gives an
// anoncrypt envelope.
func (p *Packager) Pack(senderKey string, recipientKeys []string, msg []byte) (_ []byte, err error) {
	defer err2.Handle(&err, "pack")

	if len(recipientKeys) == 0 {
		return nil, errors.New("no recipient keys")
	}
	var from []byte
	if senderKey != "" {
		from = try.To1(base58.Decode(senderKey))
	}
	return p.packager.PackMessage(&transport.Envelope{
		MediaTypeProfile: transport.LegacyDIDCommV1Profile,
		Message:          msg,
		FromKey:          from,
		ToKeys:           recipientKeys,
	})
}

// Unpack decrypts the envelope and returns the message with base58 sender
// and recipient verkeys. The sender is empty for anoncrypt.
func (p *Packager) Unpack(data []byte) (msg []byte, senderKey, recipientKey string, err error) {
	defer err2.Handle(&err, "unpack")

	env := try.To1(p.packager.UnpackMessage(data))
	if len(env.FromKey) > 0 {
		senderKey = base58.Encode(env.FromKey)
	}
	return env.Message, senderKey, base58.Encode(env.ToKey), nil
}

func (p *Packager) Packers() []packer.Packer {
	return p.packers
}

func (p *Packager) PrimaryPacker() packer.Packer {
	return p.packers[0]
}

// VDRegistry returns nil. Legacy envelopes carry raw verkeys, no DID URLs
// to resolve.
func (p *Packager) VDRegistry() vdr.Registry {
	return nil
}

func (p *Packager) KMS() kms.KeyManager {
	return p.kms
}

func (p *Packager) Crypto() cryptoapi.Crypto {
	return p.crypto
}

// StorageProvider returns nil. The legacy packers use the KMS only.
func (p *Packager) StorageProvider() storage.Provider {
	return nil
}

type kmsProvider struct {
	store kms.Store
	lock  secretlock.Service
}

func (k kmsProvider) StorageProvider() kms.Store {
	return k.store
}

func (k kmsProvider) SecretLock() secretlock.Service {
	return k.lock
}

func keyID(pub ed25519.PublicKey) (string, error) {
	return jwkkid.CreateKID(pub, kms.ED25519Type)
}

// keyStore is kms.Store over our api.Store like AFGO's provider wrapper.
type keyStore struct {
	api.Store
}

func (k keyStore) Get(keysetID string) ([]byte, error) {
	data, err := k.Store.Get(keysetID)
	if api.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", kms.ErrKeyNotFound, keysetID)
	}
	return data, err
}
