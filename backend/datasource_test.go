package backend

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs read over r without following and returns every emitted
// session.
func collect(t *testing.T, r string) []Session {
	t.Helper()
	out := make(chan Session)
	go func() {
		defer close(out)
		read(context.Background(), Session{ID: "test"}, strings.NewReader(r), nil, out)
	}()
	var sessions []Session
	for s := range out {
		sessions = append(sessions, s)
	}
	return sessions
}

func rows(s Session, column string) int {
	c, ok := s.Data.Column(column)
	if !ok {
		return -1
	}
	return len(c.Points)
}

func TestReadOnce(t *testing.T) {
	sessions := collect(t, "# exported quotes\ntime,open,high,low,close,volume\n1,1,2,0,1.5,10\n2,1.5,3,1,2,oops\nnope,1,1,1,1,1\n3,2,2,1,1,30\n")
	require.Len(t, sessions, 3)

	assert.Equal(t, 0, rows(sessions[0], BarsColumn), "the header is announced before any row")
	assert.Equal(t, 3, rows(sessions[1], BarsColumn))
	assert.Equal(t, 2, rows(sessions[1], "volume"))
	assert.False(t, sessions[1].Done)

	last := sessions[2]
	assert.True(t, last.Done)
	assert.NoError(t, last.Err)
	assert.Equal(t, 3, rows(last, BarsColumn))
}

func TestReadSnapshotsAreIndependent(t *testing.T) {
	var b strings.Builder
	b.WriteString("time,close\n")
	for i := 0; i < snapshotRows+10; i++ {
		b.WriteString("1,1\n")
	}
	sessions := collect(t, b.String())
	require.Len(t, sessions, 4)
	assert.Equal(t, snapshotRows, rows(sessions[1], "close"))
	assert.Equal(t, snapshotRows+10, rows(sessions[2], "close"))
	assert.Equal(t, snapshotRows, rows(sessions[1], "close"), "later rows do not leak into earlier snapshots")
}

func TestReadErrors(t *testing.T) {
	sessions := collect(t, "")
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Done)
	assert.Error(t, sessions[0].Err)

	sessions = collect(t, "time\n1\n")
	require.Len(t, sessions, 1)
	assert.ErrorIs(t, sessions[0].Err, ErrNoColumns)
}

// next waits for a session matching ok.
func next(t *testing.T, out <-chan Session, ok func(Session) bool) Session {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s, open := <-out:
			require.True(t, open, "session ended early")
			if ok(s) {
				return s
			}
		case <-timeout:
			t.Fatal("timed out waiting for session")
		}
	}
}

func TestReadFollowsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,close\n1,10\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	w, err := watchFile(path)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Session)
	done := make(chan struct{})
	go func() {
		defer close(done)
		read(ctx, Session{ID: "follow"}, f, w.wait, out)
	}()

	next(t, out, func(s Session) bool { return rows(s, "close") == 1 })

	appender, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = appender.WriteString("2,11\n")
	require.NoError(t, err)
	require.NoError(t, appender.Close())

	s := next(t, out, func(s Session) bool { return rows(s, "close") == 2 })
	assert.False(t, s.Done)

	cancel()
	go func() {
		for range out {
		}
	}()
	<-done
}

func TestReadAll(t *testing.T) {
	ds, err := ReadAll(context.Background(), strings.NewReader("date,value\n2024-01-02,1\n2024-01-03,2\n"))
	require.NoError(t, err)
	c, ok := ds.Column("value")
	require.True(t, ok)
	assert.Len(t, c.Points, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadAll(ctx, strings.NewReader("date,value\n2024-01-02,1\n"))
	assert.Error(t, err)
}
