package agency_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/findy-network/findy-exchange/agent/agency"
	"github.com/findy-network/findy-exchange/agent/pltype"
	"github.com/findy-network/findy-exchange/agent/prot"
	"github.com/findy-network/findy-exchange/agent/sec"
	"github.com/findy-network/findy-exchange/agent/ssi"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/std/basicmessage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbound(t *testing.T) {
	ctx := context.Background()
	h, err := utils.LoadSettings([]string{"--label=bob", "--logging=-v=0"})
	require.NoError(t, err)
	a, err := agency.New(h, nil)
	require.NoError(t, err)
	defer a.Close()

	_, bob, err := a.Wallet.CreateAndStoreDID(ctx, "")
	require.NoError(t, err)
	aw, err := ssi.NewWallet(nil)
	require.NoError(t, err)
	_, alice, err := aw.CreateAndStoreDID(ctx, "")
	require.NoError(t, err)

	got := make(chan string, 1)
	a.Handle(pltype.ProtocolBasicMessage, func(_ context.Context, in prot.Inbound) error {
		got <- in.Msg.(*basicmessage.Basicmessage).Content
		return nil
	})
	srv := httptest.NewServer(a)
	defer srv.Close()

	data, err := sec.Seal(ctx, aw, []byte(`{"@type":"https://didcomm.org/basicmessage/1.0/message","@id":"m1","content":"hi"}`),
		alice, bob, nil)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL, "application/ssi-agent-wire", bytes.NewReader(data))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "hi", <-got)

	resp, err = http.Post(srv.URL, "application/ssi-agent-wire", bytes.NewReader([]byte("garbage")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	rec := httptest.NewRecorder()
	a.Metrics().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNoLedger(t *testing.T) {
	h, err := utils.LoadSettings([]string{"--logging=-v=0"})
	require.NoError(t, err)
	a, err := agency.New(h, nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.PublishRevocations(context.Background())
	assert.True(t, errors.Is(err, core.ErrNotReady))
}
