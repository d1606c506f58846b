package stream

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Supported output compression formats
const (
	CodecNone   = "none"
	CodecZstd   = "zstd"
	CodecLZ4    = "lz4"
	CodecSnappy = "snappy"
)

var Codecs = []string{CodecNone, CodecZstd, CodecLZ4, CodecSnappy}

// Wrap writer with a compressor.
//
// Closing the sink flushes the compressor but does not close w
func NewSink(w io.Writer, codec string) (io.WriteCloser, error) {
	switch codec {
	case "", CodecNone:
		return nopCloser{w}, nil
	case CodecZstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return encoder, nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported codec: %q", codec)
	}
}

// Open output destination: a file at path or stdout for "" and "-".
//
// Closing the sink also closes the file (but never stdout)
func Create(path, codec string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return NewSink(os.Stdout, codec)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	sink, err := NewSink(file, codec)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &fileSink{WriteCloser: sink, file: file}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

type fileSink struct {
	io.WriteCloser
	file *os.File
}

func (s *fileSink) Close() error {
	err := s.WriteCloser.Close()
	if err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
