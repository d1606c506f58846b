// Raw binary output for statistical test suites
//
// Data is written in batches of 512 little-endian 32-bit words (2048 bytes)
// with no framing of any kind, e.g.:
//
//	$ chaosrand stream | dieharder -g 200 -a
package stream

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	BatchWords = 512
	BatchBytes = BatchWords * 4
)

// Anything that produces 32-bit words, one per call. Must never fail
type WordSource interface {
	Next() uint32
}

// Stream words from src to w.
//
// Non-positive limit means no limit: streaming continues until context is
// cancelled or the writer fails. Otherwise exactly limit bytes are written
// (last batch is truncated). Cancellation is not an error.
func Words(ctx context.Context, src WordSource, w io.Writer, limit int64) (written int64, err error) {
	return pump(ctx, w, limit, func(buf []byte) error {
		for i := 0; i < len(buf); i += 4 {
			binary.LittleEndian.PutUint32(buf[i:], src.Next())
		}
		return nil
	})
}

// Stream bytes from r to w in the same batches as Words().
//
// Unlike word sources readers may fail, such failures are returned
func Bytes(ctx context.Context, r io.Reader, w io.Writer, limit int64) (written int64, err error) {
	return pump(ctx, w, limit, func(buf []byte) error {
		_, err := io.ReadFull(r, buf)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		return nil
	})
}

func pump(ctx context.Context, w io.Writer, limit int64, fill func([]byte) error) (written int64, err error) {
	buf := getBuffer()
	defer func() { putBuffer(buf) }()

	done := ctx.Done()
	for {
		select {
		case <-done:
			return written, nil
		default:
		}

		buf = buf[:BatchBytes]
		err = fill(buf)
		if err != nil {
			return written, err
		}
		batch := buf
		if limit > 0 && written+int64(len(batch)) > limit {
			batch = batch[:limit-written]
		}
		var n int
		n, err = w.Write(batch)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("write: %w", err)
		}
		if limit > 0 && written >= limit {
			return written, nil
		}
	}
}
