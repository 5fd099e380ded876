package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/findy-network/findy-exchange/agent/sec"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/basicmessage"
	"github.com/findy-network/findy-exchange/std/common"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Pairwise is the result of the DID exchange: our pairwise DID and what we
// know about the other end.
type Pairwise struct {
	MyDID            string   `json:"my_did"`
	MyVerKey         string   `json:"my_verkey"`
	TheirDID         string   `json:"their_did,omitempty"`
	TheirVerKey      string   `json:"their_verkey,omitempty"`
	TheirEndpoint    string   `json:"their_endpoint,omitempty"`
	TheirRoutingKeys []string `json:"their_routing_keys,omitempty"`
	TheirLabel       string   `json:"their_label,omitempty"`
}

func (p *Pairwise) setTheirs(w core.Wallet, theirDoc core.DIDDoc) error {
	if len(common.Services(theirDoc)) == 0 {
		return core.Errorf(core.ErrInvalidJSON, "DID doc %s has no services", common.ID(theirDoc))
	}
	pipe, err := sec.NewPipe(w, p.MyVerKey, theirDoc)
	if err != nil {
		return core.Kind(core.ErrInvalidJSON, err)
	}
	p.TheirDID = pipe.Out.DID
	p.TheirVerKey = pipe.Out.VerKey
	p.TheirEndpoint = pipe.Out.Endpoint
	p.TheirRoutingKeys = pipe.Out.RoutingKeys
	return nil
}

// Pipe returns the secure pipe from our key to theirs.
func (p Pairwise) Pipe(w core.Wallet) sec.Pipe {
	return sec.Pipe{
		W:  w,
		In: p.MyVerKey,
		Out: sec.Out{
			DID:         p.TheirDID,
			VerKey:      p.TheirVerKey,
			RoutingKeys: p.TheirRoutingKeys,
			Endpoint:    p.TheirEndpoint,
		},
	}
}

// Connection sends messages over the pairwise. It implements didcomm.Sender.
type Connection struct {
	Pipe      sec.Pipe
	Transport core.Transport
}

var errNoEndpoint = errors.New("other end has no endpoint")

// Send seals the message with the pipe and posts it to the endpoint of the
// other end. Transport failures are core.ErrBackend.
func (c *Connection) Send(ctx context.Context, m didcomm.MessageHdr) (err error) {
	defer err2.Handle(&err, "send %s", m.Hdr().Type)

	if c.Pipe.Out.Endpoint == "" {
		return errNoEndpoint
	}
	data := try.To1(didcomm.JSON(m))
	packed, _ := try.To2(c.Pipe.Pack(ctx, data))
	if err := c.Transport.SendMessage(ctx, packed, c.Pipe.Out.Endpoint); err != nil {
		return core.Backend(err)
	}
	glog.V(1).Infof("%s sent to %s", m.Hdr().Type, c.Pipe.Out.Endpoint)
	return nil
}

// SendBasicMessage sends a basic message and returns it.
func (c *Connection) SendBasicMessage(ctx context.Context, content string) (*basicmessage.Basicmessage, error) {
	msg := basicmessage.New(content)
	if err := c.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("basic message: %w", err)
	}
	return msg, nil
}
