/*
Package trans has the core.Transport implementations: HTTP POST, websocket
and a retrying wrapper. New returns the transport the settings ask for.
*/
package trans

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// ContentType is the legacy DIDComm v1 envelope media type.
const ContentType = "application/ssi-agent-wire"

// errorMessageMaxLength is the maximum length of the response body we
// include to the error.
const errorMessageMaxLength = 80

// StatusError is a non 2xx response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Body)
}

// Temporary tells if sending again could help.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

// HTTP posts the envelope to the endpoint URL.
type HTTP struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewHTTP(timeout time.Duration) *HTTP {
	return &HTTP{Client: &http.Client{}, Timeout: timeout}
}

func (t *HTTP) SendMessage(ctx context.Context, msg []byte, urlStr string) (err error) {
	defer err2.Handle(&err, func(err error) error {
		return fmt.Errorf("http send: %w", core.Backend(err))
	})

	u := try.To1(url.Parse(urlStr))
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	request := try.To1(http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(msg)))
	request.Header.Set("Content-Type", ContentType)

	response := try.To1(t.Client.Do(request))
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil {
			glog.Warningln("body.Close: ", closeErr)
		}
	}()
	data := try.To1(io.ReadAll(io.LimitReader(response.Body, errorMessageMaxLength)))
	if response.StatusCode < 200 || response.StatusCode > 299 {
		glog.Warning("http code:", response.Status)
		se := &StatusError{Code: response.StatusCode, Status: response.Status}
		if strings.HasPrefix(response.Header.Get("Content-Type"), "text/plain") {
			se.Body = string(data)
		}
		return se
	}
	glog.V(5).Infof("%d bytes posted to %s", len(msg), u.Host)
	return nil
}

// Schemes routes the sends by the URL scheme.
type Schemes map[string]core.Transport

func (s Schemes) SendMessage(ctx context.Context, msg []byte, urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	t, ok := s[u.Scheme]
	if !ok {
		return core.Errorf(core.ErrUnimplemented, "no transport for %q", u.Scheme)
	}
	return t.SendMessage(ctx, msg, urlStr)
}

// New returns http, https, ws and wss transport with the timeout and retries
// of the settings.
func New(h *utils.Hub) core.Transport {
	web := NewHTTP(h.Timeout())
	ws := &Websocket{Origin: "http://localhost/"}
	var t core.Transport = Schemes{"http": web, "https": web, "ws": ws, "wss": ws}
	if h.Retries() > 0 {
		t = NewRetrying(t, h.Retries())
	}
	return t
}
