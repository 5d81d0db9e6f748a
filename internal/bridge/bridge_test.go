package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func TestFeed_EmptyPayload(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- Feed(context.Background(), nil, func(r io.Reader) error {
			_, err := io.ReadAll(r)
			return err
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Feed(empty) = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Feed(empty) hung")
	}
}

func TestFeed_MultiChunkOrdering(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789abcdef"), 300) // ~4.7 chunks

	var got []byte
	err := Feed(context.Background(), payload, func(r io.Reader) error {
		var err error
		got, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		t.Fatalf("Feed() = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("reader saw %d bytes, want %d, or order differs", len(got), len(payload))
	}
}

func TestFeed_ReaderErrorDoesNotLeakWriter(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 64*ChunkSize)
	wantErr := errors.New("give up")

	done := make(chan error, 1)
	go func() {
		done <- Feed(context.Background(), payload, func(r io.Reader) error {
			buf := make([]byte, 10)
			r.Read(buf) // consume a little, then fail
			return wantErr
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, wantErr) {
			t.Errorf("Feed() = %v, want the reader's error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Feed() blocked on abandoned writer")
	}
}

func TestFeed_ContextCancellation(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 64*ChunkSize)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Feed(ctx, payload, func(r io.Reader) error {
			buf := make([]byte, ChunkSize)
			if _, err := io.ReadFull(r, buf); err != nil {
				return err
			}
			cancel()
			_, err := io.ReadAll(r)
			return err
		})
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Feed() = nil after cancellation, want error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Feed() did not return after cancellation")
	}
}
