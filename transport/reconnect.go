package transport

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// redialContext retries Dial with exponential backoff until it succeeds
// or ctx is cancelled. This is the reconnect hook §4.3 calls out as part
// of the transport's contract; the decision of *when* to invoke it
// (e.g. after a TransportError, §7) belongs to the caller, since the
// reconnect policy itself is an external collaborator (§1).
func redialContext(ctx context.Context, cfg Config, sink Sink) (*Transport, error) {
	b := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)

	var t *Transport
	op := func() error {
		conn, err := Dial(cfg, sink)
		if err != nil {
			return err
		}
		t = conn
		return nil
	}

	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return t, nil
}
