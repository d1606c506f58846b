//go:build !linux

package baseline

import (
	"crypto/rand"
	"io"
)

func systemEntropy() io.Reader {
	return rand.Reader
}
