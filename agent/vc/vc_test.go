package vc

import (
	"context"
	"errors"
	"testing"

	"github.com/findy-network/findy-exchange/core"
	"github.com/findy-network/findy-exchange/core/mock"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		raw, encoded string
	}{
		{"Alex", "99262857098057710338306967609588410025648622308394250666849665532448612202874"},
		{"25", "25"},
		{"-1", "-1"},
		{"2147483648", "26221484005389514539852548961319751347124425277437769688639924217837557266135"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.encoded, Encode(tt.raw))
		})
	}
}

func TestEncodeValues(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	data, err := EncodeValues(map[string]string{"age": "25", "name": "Alex"})
	assert.NoError(err)
	assert.Equal(gjson.GetBytes(data, "age.encoded").String(), "25")
	assert.Equal(gjson.GetBytes(data, "name.raw").String(), "Alex")
	assert.Equal(gjson.GetBytes(data, "name.encoded").String(), Encode("Alex"))
}

func TestParseIDs(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	s := ParseSchemaID("Th7MpTaRZVRYnPiabds81Y:2:email:1.0")
	assert.Equal(s.DID, "Th7MpTaRZVRYnPiabds81Y")
	assert.Equal(s.Name, "email")
	assert.Equal(s.Version, "1.0")

	cd := ParseCredDefID("Th7MpTaRZVRYnPiabds81Y:3:CL:12:tag")
	assert.Equal(cd.IssuerDID, "Th7MpTaRZVRYnPiabds81Y")
	assert.Equal(cd.Tag, "tag")

	assert.Equal(ParseSchemaID("broken").Name, "")
}

func TestCredDefFromLedger(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	ledger := mock.NewMockLedgerRead(ctrl)
	ledger.EXPECT().GetCredDef(gomock.Any(), "cd1").Return(`{"value":{"revocation":{}}}`, nil)
	ledger.EXPECT().GetCredDef(gomock.Any(), "cd2").Return("", errors.New("no pool"))
	ledger.EXPECT().GetCredDef(gomock.Any(), "cd3").Return("not json", nil)

	cd, err := CredDefFromLedger(ctx, ledger, "cd1")
	assert.NoError(err)
	assert.That(SupportsRevocation(cd))

	_, err = CredDefFromLedger(ctx, ledger, "cd2")
	assert.That(errors.Is(err, core.ErrBackend))

	_, err = CredDefFromLedger(ctx, ledger, "cd3")
	assert.That(errors.Is(err, core.ErrInvalidJSON))

	assert.Equal(OfferCredDefID(`{"cred_def_id":"cd1"}`), "cd1")
}
