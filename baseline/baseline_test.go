package baseline

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"golang.org/x/crypto/sha3"
)

// Deterministic entropy: counter bytes, at most limit bytes per Read
type fakeEntropy struct {
	next  byte
	limit int
	reads int
}

func (f *fakeEntropy) Read(p []byte) (int, error) {
	f.reads++
	n := len(p)
	if f.limit > 0 && n > f.limit {
		n = f.limit
	}
	for i := 0; i < n; i++ {
		p[i] = f.next
		f.next++
	}
	return n, nil
}

func expected(t *testing.T, size, chunk int) []byte {
	t.Helper()
	source := &fakeEntropy{limit: chunk}
	raw := make([]byte, chunk)
	var out []byte
	for len(out) < size {
		_, _ = source.Read(raw)
		squeeze := size - len(out)
		if squeeze > chunk {
			squeeze = chunk
		}
		digest := make([]byte, squeeze)
		sha3.ShakeSum256(digest, raw)
		out = append(out, digest...)
	}
	return out
}

func TestChunking(t *testing.T) {
	tests := []struct {
		size  int
		limit int
	}{
		{1, 0},
		{ChunkSize, 0},
		{ChunkSize + 1, 0},
		{3*ChunkSize + 100, 0},
		{1000, 100},
		{777, 13},
	}
	for _, tt := range tests {
		chunk := ChunkSize
		if tt.limit > 0 {
			chunk = tt.limit
		}
		want := expected(t, tt.size, chunk)

		source := &fakeEntropy{limit: tt.limit}
		got := make([]byte, tt.size)
		n, err := NewFrom(source).Read(got)
		if err != nil {
			t.Fatalf("size=%d: %v", tt.size, err)
		}
		if n != tt.size {
			t.Fatalf("size=%d: short read %d", tt.size, n)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("size=%d limit=%d: output does not match per-chunk SHAKE256", tt.size, tt.limit)
		}
		if wantReads := (tt.size + chunk - 1) / chunk; source.reads != wantReads {
			t.Errorf("size=%d limit=%d: %d entropy reads, want %d", tt.size, tt.limit, source.reads, wantReads)
		}
	}
}

type brokenEntropy struct{}

func (brokenEntropy) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestEntropyFailure(t *testing.T) {
	_, err := NewFrom(brokenEntropy{}).Read(make([]byte, 10))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want wrapped %v", err, io.ErrUnexpectedEOF)
	}
}

func TestFill(t *testing.T) {
	const size = 2*ChunkSize + 7
	a := make([]byte, size)
	b := make([]byte, size)
	for _, buf := range [][]byte{a, b} {
		err := Fill(buf)
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two baseline samples are identical")
	}
	if bytes.Equal(a, make([]byte, size)) {
		t.Fatalf("baseline sample is all zeroes")
	}
	if Fill(nil) == nil {
		t.Fatalf("empty buffer accepted")
	}
}

func BenchmarkRead(b *testing.B) {
	r := New()
	buf := make([]byte, 2048)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		_, err := r.Read(buf)
		if err != nil {
			b.Fatal(err)
		}
	}
}
