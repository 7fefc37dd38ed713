package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingTransport struct{}

func (failingTransport) Publish(context.Context, LogEntry) error {
	return errors.New("broker unreachable")
}

func TestRelay_DispatchResolvesToSuccess(t *testing.T) {
	r := New(nil, 20, 10*time.Millisecond, discardLogger())

	entry := r.Dispatch(context.Background(), KindEmail, "a@x.com", "hello", "Subject")
	assert.Equal(t, StatusProcessing, entry.Status)

	require.Eventually(t, func() bool {
		return r.Log()[0].Status == StatusSuccess
	}, time.Second, 5*time.Millisecond)
}

func TestRelay_LogIsBoundedMostRecentFirst(t *testing.T) {
	r := New(nil, 5, time.Minute, discardLogger())

	for i := 0; i < 7; i++ {
		r.Dispatch(context.Background(), KindSMS, fmt.Sprintf("target-%d", i), "msg", "")
	}

	log := r.Log()
	require.Len(t, log, 5)
	assert.Equal(t, "target-6", log[0].Target)
	assert.Equal(t, "target-2", log[len(log)-1].Target)
}

func TestRelay_TransportFailureIsSwallowed(t *testing.T) {
	r := New(failingTransport{}, 20, 10*time.Millisecond, discardLogger())

	// Dispatch never returns an error to the caller.
	entry := r.Dispatch(context.Background(), KindEmail, "a@x.com", "hello", "Subject")
	assert.Equal(t, StatusFailed, entry.Status)

	// A failed entry stays failed, it is not flipped to success.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StatusFailed, r.Log()[0].Status)
}
