// Package bridge feeds a blocking, pull-style reader from a payload that is
// only available as a pushed byte slice.
//
// A dedicated goroutine writes the payload into one end of an in-memory
// pipe in fixed-size chunks and closes the write end after the final flush,
// so the reader never sees EOF early. If the reader gives up before
// draining the pipe, the read end is closed with the reader's error, which
// unblocks the writer instead of leaking it.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ChunkSize is the write granularity. The historical implementation used
// 1024-byte writes against the platform pipe buffer; io.Pipe has no kernel
// buffer but the chunking keeps reader and writer interleaved.
const ChunkSize = 1024

// ErrBroken wraps pipe failures during a transfer.
var ErrBroken = errors.New("text bridge broken")

// Feed pushes payload through a pipe to read, which must consume the
// supplied reader until EOF or error. Feed blocks until the reader has
// returned and the writer goroutine has exited. An empty payload is a
// no-op: the pipe is opened and immediately closed.
func Feed(ctx context.Context, payload []byte, read func(io.Reader) error) error {
	pr, pw := io.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- writeChunks(ctx, pw, payload)
	}()

	readErr := read(pr)

	// Unblocks the writer when the reader stopped early. A nil error here
	// makes further writes fail with io.ErrClosedPipe, which writeChunks
	// treats as the reader being done.
	pr.CloseWithError(readErr)

	writeErr := <-done

	if readErr != nil {
		return readErr
	}
	if writeErr != nil {
		return fmt.Errorf("%w: %v", ErrBroken, writeErr)
	}
	return nil
}

func writeChunks(ctx context.Context, pw *io.PipeWriter, payload []byte) error {
	for len(payload) > 0 {
		select {
		case <-ctx.Done():
			pw.CloseWithError(ctx.Err())
			return ctx.Err()
		default:
		}

		n := len(payload)
		if n > ChunkSize {
			n = ChunkSize
		}
		if _, err := pw.Write(payload[:n]); err != nil {
			pw.CloseWithError(err)
			if err == io.ErrClosedPipe {
				// Reader finished without draining; not a transfer fault.
				return nil
			}
			return err
		}
		payload = payload[n:]
	}

	return pw.Close()
}
