// Package config turns the command line into client settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
)

// ErrUsage is returned when the command line is incomplete or malformed.
// The usage text has already been written when it is returned.
var ErrUsage = errors.New("usage")

// Config holds the client settings for one game.
type Config struct {
	Host    string
	Port    int
	Simple  bool   // Line-based prompt even on a terminal
	Bot     string // Resolved script path, empty for a human player
	Debug   bool
	NoColor bool
}

// Address returns host:port for dialing.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Parse reads args (without the program name). Usage and flag errors are
// written to stderr.
func Parse(prog string, args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.Simple, "simple", false, "Use a line-based prompt instead of the interactive one")
	bot := fs.String("bot", "", "Let a Lua script play: a file path or a name under "+BotsDir())
	fs.BoolVar(&cfg.Debug, "debug", false, "Print protocol diagnostics to stderr")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage %s [flags] hostname port\n", prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrUsage
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return nil, ErrUsage
	}

	cfg.Host = fs.Arg(0)
	port, err := strconv.Atoi(fs.Arg(1))
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintf(stderr, "invalid port %q\n", fs.Arg(1))
		fs.Usage()
		return nil, ErrUsage
	}
	cfg.Port = port
	cfg.Bot = ResolveBot(*bot)

	return cfg, nil
}
