// Reference random stream: operating system entropy whitened by SHAKE256
//
// Used as a comparator for the chaotic generator. Every chunk of raw entropy
// is absorbed into a fresh extendable-output hash which is then squeezed for
// as many bytes as the chunk had.
package baseline

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// Raw entropy is consumed in chunks of this size
const ChunkSize = 4096

type Reader struct {
	entropy io.Reader
	raw     []byte
}

// Baseline stream backed by system entropy
func New() *Reader {
	return NewFrom(systemEntropy())
}

// Baseline stream backed by arbitrary entropy source
func NewFrom(entropy io.Reader) *Reader {
	return &Reader{
		entropy: entropy,
		raw:     make([]byte, ChunkSize),
	}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	defer clear(r.raw)
	for n < len(p) {
		rd, err := r.entropy.Read(r.raw)
		if rd <= 0 {
			if err == nil {
				err = io.ErrNoProgress
			}
			return n, fmt.Errorf("read entropy: %w", err)
		}
		squeeze := len(p) - n
		if squeeze > rd {
			squeeze = rd
		}
		shake := sha3.NewShake256()
		_, _ = shake.Write(r.raw[:rd])
		_, _ = shake.Read(p[n : n+squeeze])
		n += squeeze
	}
	return n, nil
}

// Fill the buffer with baseline random bytes
func Fill(out []byte) error {
	if len(out) == 0 {
		return errors.New("nothing to fill")
	}
	_, err := io.ReadFull(New(), out)
	return err
}
