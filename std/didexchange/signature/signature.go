// Package signature signs and verifies the did_doc~attach of the DID exchange
// response. The signature is a detached EdDSA JWS over the base64 data of the
// attachment, signed with the key of the invitation.
package signature

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/decorator"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

type jwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Kid string `json:"kid,omitempty"`
}

type protectedHeader struct {
	Alg string `json:"alg"`
	JWK jwk    `json:"jwk"`
}

var b64 = base64.RawURLEncoding

// Sign adds detached JWS to the attachment. verkey is base58 and it must be
// found from the wallet.
func Sign(ctx context.Context, w core.Wallet, verkey string, a *decorator.Attachment) (err error) {
	defer err2.Handle(&err, "sign DID doc attachment")

	if a.Data.Base64 == "" {
		return errors.New("only base64 attachments can be signed")
	}
	pub := try.To1(base58.Decode(verkey))
	kid := utils.DIDKey(verkey)
	protected := try.To1(json.Marshal(protectedHeader{
		Alg: "EdDSA",
		JWK: jwk{Kty: "OKP", Crv: "Ed25519", X: b64.EncodeToString(pub), Kid: kid},
	}))
	p := b64.EncodeToString(protected)
	sig := try.To1(w.Sign(ctx, verkey, signingInput(p, a.Data.Base64)))

	a.Data.JWS = &decorator.AttachmentJWS{
		Header:    map[string]string{"kid": kid},
		Protected: p,
		Signature: b64.EncodeToString(sig),
	}
	return nil
}

// Verify checks the JWS of the attachment against the base58 verkey. The key
// in the JWS must be the same.
func Verify(a *decorator.Attachment, verkey string) (err error) {
	defer err2.Handle(&err, func(err error) error {
		return fmt.Errorf("verify DID doc attachment: %w", core.Kind(core.ErrAuthentication, err))
	})

	jws := a.Data.JWS
	if jws == nil {
		return errors.New("attachment is not signed")
	}
	var ph protectedHeader
	try.To(json.Unmarshal(try.To1(b64.DecodeString(jws.Protected)), &ph))
	if ph.Alg != "EdDSA" {
		return fmt.Errorf("unsupported JWS alg %q", ph.Alg)
	}
	pub := try.To1(base58.Decode(verkey))
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid verkey length %d", len(pub))
	}
	if ph.JWK.X != "" && ph.JWK.X != b64.EncodeToString(pub) {
		return errors.New("JWS key isn't the expected key")
	}
	sig := try.To1(b64.DecodeString(jws.Signature))
	if !ed25519.Verify(pub, signingInput(jws.Protected, a.Data.Base64), sig) {
		return errors.New("invalid signature")
	}
	glog.V(3).Infoln("DID doc attachment verified by", verkey)
	return nil
}

func signingInput(protected, payload string) []byte {
	return []byte(protected + "." + payload)
}
