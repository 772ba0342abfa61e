package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)

	w, h, err := s.getSize()
	require.NoError(t, err)
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}

func TestActivityReaderRecordsInput(t *testing.T) {
	a := newActivityReader(strings.NewReader("w"))
	a.last.Store(0)

	buf := make([]byte, 4)
	n, err := a.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Greater(t, a.last.Load(), int64(0))

	before := a.last.Load()
	_, err = a.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, before, a.last.Load(), "empty reads are not activity")
}

func TestActivityReaderWatchFiresWhenIdle(t *testing.T) {
	a := newActivityReader(strings.NewReader(""))
	a.last.Store(time.Now().Add(-time.Hour).UnixNano())

	fired := make(chan struct{})
	go a.watch(context.Background(), time.Minute, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("idle session was not reported")
	}
}
