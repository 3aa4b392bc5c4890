package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testSnapshot() domain.Snapshot {
	fetched := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	return domain.Snapshot{
		CycleID:   "5a4e2f9c-cycle",
		Basin:     "wp",
		FetchedAt: fetched,
		Storms: []domain.Storm{
			{ID: "wp012025", Name: "KROSA", Basin: "wp", Year: 2025},
			{ID: "wp022025", Name: "WP02", Basin: "wp", Year: 2025},
		},
	}
}

func TestSerializeToMessage(t *testing.T) {
	snap := testSnapshot()

	msg, err := serializeToMessage(snap, snap.Storms[0])
	require.NoError(t, err)

	assert.Equal(t, []byte("wp012025"), msg.Key)
	assert.Contains(t, string(msg.Value), `"name":"KROSA"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "cycle_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("5a4e2f9c-cycle"), msg.Headers[0].Value)
	assert.Equal(t, "basin", msg.Headers[1].Key)
	assert.Equal(t, []byte("wp"), msg.Headers[1].Value)
	assert.Equal(t, "fetched_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2025-09-03T00:00:00Z"), msg.Headers[2].Value)
}

func TestWriter_PublishSnapshot(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, w.PublishSnapshot(context.Background(), testSnapshot()))
	require.Len(t, fw.msgs, 2)
	assert.Equal(t, []byte("wp012025"), fw.msgs[0].Key)
	assert.Equal(t, []byte("wp022025"), fw.msgs[1].Key)

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestWriter_PublishEmptySnapshot(t *testing.T) {
	fw := &fakeWriter{err: errors.New("should not be called")}
	w := &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, w.PublishSnapshot(context.Background(), domain.Snapshot{CycleID: "empty"}))
}

func TestWriter_PublishError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("leader not available")}
	w := &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := w.PublishSnapshot(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}
