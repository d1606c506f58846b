package baseline

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

func systemEntropy() io.Reader {
	return getrandom{}
}

// Kernel entropy via getrandom(2), same pool as /dev/urandom
type getrandom struct{}

func (getrandom) Read(p []byte) (n int, err error) {
	for {
		n, err = unix.Getrandom(p, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return n, err
	}
}
