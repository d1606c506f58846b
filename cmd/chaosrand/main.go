// Chaotic map random stream for statistical test suites
//
//	$ chaosrand stream | dieharder -g 200 -a
//	$ chaosrand baseline --bytes=67108864 --output=baseline.bin
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/sio/pond/chaosrand/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	parser, err := newParser(ctx, &cli)
	if err != nil {
		fail(err)
	}
	command, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = logger.Setup(cli.LogLevel, cli.LogFormat)
	if err != nil {
		fail(err)
	}
	err = command.Run()
	if err != nil {
		// Remove the name of failed function that kong prepends
		prefix, reason, found := strings.Cut(err.Error(), " ")
		if found && strings.HasSuffix(prefix, ":") {
			fail(reason)
		} else {
			fail(err)
		}
	}
}

func newParser(ctx context.Context, cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("chaosrand"),
		kong.Description("Pseudo-random bit stream driven by rounding error of a chaotic map"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "/etc/chaosrand.json", "~/.config/chaosrand.json"),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}, options...)
	return kong.New(cli, options...)
}

func ok(message any, args ...any) {
	out(os.Stdout, message, args...)
}

func fail(message any, args ...any) {
	var buf = new(bytes.Buffer)
	out(buf, message, args...)
	errmsg := buf.String()
	if !strings.HasPrefix(strings.ToLower(errmsg), "error") {
		errmsg = "Error: " + errmsg
	}
	out(os.Stderr, errmsg)
	os.Exit(1)
}

func out(dest io.Writer, message any, args ...any) {
	var s string
	var ok bool
	if s, ok = message.(string); !ok {
		_, _ = fmt.Fprintln(dest, message)
		return
	}
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	if len(args) == 0 {
		_, _ = fmt.Fprint(dest, s)
		return
	}
	_, _ = fmt.Fprintf(dest, s, args...)
}
