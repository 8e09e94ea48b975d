// Package source feeds model output into the stream parser. Output can come
// from a plain reader, a stream-json event log, or a generator command.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 64

// CopyChunks reads r in chunks of at most size bytes and writes each chunk to
// w as it arrives. It returns the number of bytes copied.
func CopyChunks(ctx context.Context, r io.Reader, w io.Writer, size int) (int64, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)
	var total int64
	for {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, fmt.Errorf("reading input: %w", err)
		}
	}
}
