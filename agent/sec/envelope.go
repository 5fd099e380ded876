/*
Package sec is the encryption envelope of agent to agent messages. Seal, Open
and OpenAuth work over core.Wallet, which does the legacy DIDComm v1 packing,
and add the forward routing: every routing key adds one anonymously
encrypted forward layer.
*/
package sec

import (
	"context"
	"fmt"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Seal encrypts msg to recipientKey and wraps it to forward messages, one
// for each routing key in order. Empty senderKey gives anonymous encryption.
func Seal(
	ctx context.Context,
	w core.Wallet,
	msg []byte,
	senderKey, recipientKey string,
	routingKeys []string,
) (data []byte, err error) {
	defer err2.Handle(&err, "seal")

	data = try.To1(w.PackMessage(ctx, senderKey, []string{recipientKey}, msg))
	to := recipientKey
	for _, rk := range routingKeys {
		fwd := try.To1(didcomm.JSON(common.NewForward(to, data)))
		data = try.To1(w.PackMessage(ctx, "", []string{rk}, fwd))
		glog.V(5).Infof("forward to %s wrapped for %s", to, rk)
		to = rk
	}
	return data, nil
}

// Open decrypts the envelope. The sender key of the result is empty when the
// message was encrypted anonymously.
func Open(ctx context.Context, w core.Wallet, data []byte) (u *core.Unpacked, err error) {
	defer err2.Handle(&err, "open")

	u = try.To1(w.UnpackMessage(ctx, data))
	return u, nil
}

// OpenAuth decrypts the envelope and requires that it was encrypted by
// expectedSender. Failure is core.ErrAuthentication.
func OpenAuth(ctx context.Context, w core.Wallet, data []byte, expectedSender string) (u *core.Unpacked, err error) {
	u, err = Open(ctx, w, data)
	if err != nil {
		return nil, err
	}
	switch u.SenderKey {
	case "":
		return nil, core.Errorf(core.ErrAuthentication,
			"anonymous message, expected sender %s", expectedSender)
	case expectedSender:
		return u, nil
	default:
		glog.Warningf("sender %s isn't expected %s", u.SenderKey, expectedSender)
		return nil, core.Errorf(core.ErrAuthentication,
			"message from %s, expected sender %s", u.SenderKey, expectedSender)
	}
}

// Forwarded returns the inner envelope if the message is a forward to the
// key.
func Forwarded(m didcomm.MessageHdr, key string) ([]byte, error) {
	fwd, ok := m.(*common.Forward)
	if !ok {
		return nil, fmt.Errorf("not a forward message: %s", m.Hdr().Type)
	}
	if fwd.To != key {
		return nil, fmt.Errorf("forward to %s, not to us", fwd.To)
	}
	return fwd.Msg, nil
}
