package trans

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/findy-network/findy-exchange/core"
	"github.com/golang/glog"
)

// Retrying sends again with exponential backoff when the send fails. Client
// errors (4xx) and a done context end the retries.
type Retrying struct {
	Next       core.Transport
	MaxRetries uint64

	// NewBackOff is for tests, default is backoff.NewExponentialBackOff.
	NewBackOff func() backoff.BackOff
}

func NewRetrying(next core.Transport, maxRetries uint64) *Retrying {
	return &Retrying{Next: next, MaxRetries: maxRetries}
}

func (r *Retrying) SendMessage(ctx context.Context, msg []byte, url string) error {
	var b backoff.BackOff
	if r.NewBackOff != nil {
		b = r.NewBackOff()
	} else {
		eb := backoff.NewExponentialBackOff()
		eb.MaxElapsedTime = 2 * time.Minute
		b = eb
	}
	b = backoff.WithContext(backoff.WithMaxRetries(b, r.MaxRetries), ctx)

	return backoff.RetryNotify(func() error {
		err := r.Next.SendMessage(ctx, msg, url)
		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, d time.Duration) {
		glog.Warningf("send to %s failed, retry in %s: %v", url, d, err)
	})
}
