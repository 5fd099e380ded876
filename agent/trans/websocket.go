package trans

import (
	"context"
	"fmt"

	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"golang.org/x/net/websocket"
)

// Websocket sends every envelope in its own connection as one binary
// message.
type Websocket struct {
	// Origin must be a valid URL, servers seldom check it.
	Origin string
}

func (t *Websocket) SendMessage(ctx context.Context, msg []byte, url string) (err error) {
	defer err2.Handle(&err, func(err error) error {
		return fmt.Errorf("ws send: %w", core.Backend(err))
	})

	cfg := try.To1(websocket.NewConfig(url, t.Origin))
	ws := try.To1(cfg.DialContext(ctx))
	defer func() {
		if closeErr := ws.Close(); closeErr != nil {
			glog.V(3).Info("websocket close: ", closeErr)
		}
	}()
	try.To(websocket.Message.Send(ws, msg))
	return nil
}
