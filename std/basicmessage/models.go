package basicmessage

import (
	"errors"
	"strings"
	"time"

	"github.com/findy-network/findy-exchange/agent/didcomm"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// AriesTime accepts both ACA-Py and RFC3339 timestamps and writes the ACA-Py
// format.
type AriesTime struct {
	time.Time
}

// ACA-Py fails with more precision than micro seconds.
const ISO8601 = "2006-01-02 15:04:05.999999Z"

type Basicmessage struct {
	didcomm.Header
	Content  string    `json:"content"`
	SentTime AriesTime `json:"sent_time"`
}

func parseTimestamp(timeStr string) (t time.Time, err error) {
	for _, layout := range []string{ISO8601, time.RFC3339} {
		if t, err = time.Parse(layout, timeStr); err == nil {
			break
		}
	}
	return
}

func (at *AriesTime) UnmarshalJSON(b []byte) (err error) {
	defer err2.Handle(&err, "sent_time")

	t := try.To1(parseTimestamp(strings.Trim(string(b), "\"")))

	*at = AriesTime{Time: t}
	return nil
}

func (at AriesTime) MarshalJSON() ([]byte, error) {
	t := at.Time.UTC()
	if y := t.Year(); y < 0 || y >= 10000 {
		return nil, errors.New("sent_time: year outside of range [0,9999]")
	}

	b := make([]byte, 0, len(ISO8601)+2)
	b = append(b, '"')
	b = t.AppendFormat(b, ISO8601)
	b = append(b, '"')
	return b, nil
}

func (at AriesTime) String() string {
	return at.Time.String()
}
