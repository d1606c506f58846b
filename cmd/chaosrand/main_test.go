package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/klauspost/compress/zstd"

	"github.com/sio/pond/chaosrand/generator"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := newParser(
		context.Background(),
		&cli,
		kong.Writers(io.Discard, io.Discard),
		kong.Exit(func(code int) { t.Fatalf("parser exited with code %d", code) }),
	)
	if err != nil {
		t.Fatalf("parser: %v", err)
	}
	command, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return command.Run()
}

func expect(t *testing.T, params generator.Params, size int) []byte {
	t.Helper()
	g, err := generator.New(params)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, size)
	_, _ = g.Read(buf)
	return buf
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestStream(t *testing.T) {
	output := filepath.Join(t.TempDir(), "stream.bin")
	err := run(t, "stream", "--bytes=5000", "--output="+output)
	if err != nil {
		t.Fatal(err)
	}
	got := readFile(t, output)
	if !bytes.Equal(got, expect(t, generator.DefaultParams(), 5000)) {
		t.Fatalf("stream output differs from generator output (%d bytes)", len(got))
	}
}

func TestDefaultCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "stream.bin")
	err := run(t, "-n", "100", "-o", output, "--alpha=0")
	if err != nil {
		t.Fatal(err)
	}
	params := generator.DefaultParams()
	params.Alpha = 0
	if !bytes.Equal(readFile(t, output), expect(t, params, 100)) {
		t.Fatalf("default command did not stream generator output")
	}
}

func TestStreamCompressed(t *testing.T) {
	output := filepath.Join(t.TempDir(), "stream.bin.zst")
	err := run(t, "stream", "--bytes=10000", "--output="+output, "--compress=zstd")
	if err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = file.Close() })
	decoder, err := zstd.NewReader(file)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(decoder.Close)
	got, err := io.ReadAll(decoder)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, expect(t, generator.DefaultParams(), 10000)) {
		t.Fatalf("decompressed output differs from generator output")
	}
}

func TestStreamJitter(t *testing.T) {
	output := filepath.Join(t.TempDir(), "jitter.bin")
	err := run(t, "stream", "--jitter", "--bytes=4096", "--output="+output)
	if err != nil {
		t.Fatal(err)
	}
	got := readFile(t, output)
	if len(got) != 4096 {
		t.Fatalf("got %d bytes, want 4096", len(got))
	}
	if bytes.Equal(got, expect(t, generator.DefaultParams(), 4096)) {
		t.Fatalf("jitter mode produced deterministic output")
	}
}

func TestSingular(t *testing.T) {
	output := filepath.Join(t.TempDir(), "singular.bin")
	err := run(t, "stream", "--x0=0", "--bytes=16", "--output="+output)
	if err == nil || !strings.Contains(err.Error(), "singular") {
		t.Fatalf("singular initial state was not rejected: %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.json")
	err := os.WriteFile(config, []byte(`{"alpha": 0.5, "lambda": 2}`), 0600)
	if err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "stream.bin")
	err = run(t, "--config="+config, "stream", "--bytes=256", "--output="+output)
	if err != nil {
		t.Fatal(err)
	}
	params := generator.DefaultParams()
	params.Alpha = 0.5
	params.Lambda = 2
	if !bytes.Equal(readFile(t, output), expect(t, params, 256)) {
		t.Fatalf("configuration file values were not applied")
	}
}

func TestBaseline(t *testing.T) {
	output := filepath.Join(t.TempDir(), "baseline.bin")
	err := run(t, "baseline", "--bytes=10000", "--output="+output)
	if err != nil {
		t.Fatal(err)
	}
	got := readFile(t, output)
	if len(got) != 10000 {
		t.Fatalf("got %d bytes, want 10000", len(got))
	}
}

func TestCheck(t *testing.T) {
	for _, args := range [][]string{
		{"check", "--bytes=262144"},
		{"check", "--source=baseline", "--bytes=65536"},
	} {
		err := run(t, args...)
		if err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
	err := run(t, "check", "--bytes=0")
	if err == nil {
		t.Errorf("empty sample accepted")
	}
}

func TestInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"stream", "--compress=gzip"},
		{"--log-level=loud", "stream"},
		{"check", "--source=urandom"},
	} {
		err := run(t, args...)
		if err == nil {
			t.Errorf("%v: invalid flags accepted", args)
		}
	}
}
