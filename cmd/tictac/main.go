package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/drake/tictac/config"
	"github.com/drake/tictac/debug"
	"github.com/drake/tictac/lua"
	"github.com/drake/tictac/network"
	"github.com/drake/tictac/protocol"
	"github.com/drake/tictac/session"
	"github.com/drake/tictac/ui"
)

const disconnectedMessage = "Either the server shut down or the other player disconnected.\nGame over."

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run plays one game and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(filepath.Base(args[0]), args[1:], stderr)
	if err != nil {
		return 2
	}

	debugMode := cfg.Debug || debug.Enabled()
	logger, err := debug.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintln(stderr, "Error creating logger:", err)
		return 1
	}
	defer logger.Sync()

	color := !cfg.NoColor && !termenv.EnvNoColor() && isTerminal(stdout)
	display := ui.NewConsole(stdout, color)

	var prompter session.Prompter
	switch {
	case cfg.Bot != "":
		bot, err := lua.NewPrompter(cfg.Bot, stdout, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Error loading bot:", err)
			return 1
		}
		defer bot.Close()
		prompter = bot
	case !cfg.Simple && isTerminal(stdin) && isTerminal(stdout):
		prompter = ui.NewTeaPrompter()
	default:
		prompter = ui.NewConsolePrompter(stdin, stdout)
	}

	conn, err := network.Dial(ctx, cfg.Address(), logger)
	if err != nil {
		return report(err, debugMode, stdout, stderr, logger)
	}

	sess := session.New(conn, session.Config{
		Display:  display,
		Prompter: prompter,
		Logger:   logger,
	})
	_, err = sess.Run()
	return report(err, debugMode, stdout, stderr, logger)
}

// report is the single place fatal errors are shown to the player.
func report(err error, debugMode bool, stdout, stderr io.Writer, logger *zap.Logger) int {
	if err == nil {
		return 0
	}
	logger.Debug("session failed", zap.Error(err))

	var (
		setupErr   *network.ConnectionSetupError
		ioErr      *network.ProtocolIOError
		unknownErr *protocol.UnknownMessageError
	)
	switch {
	case errors.As(err, &setupErr):
		if setupErr.NoSuchHost() {
			fmt.Fprintln(stderr, "ERROR, no such host")
		} else if debugMode {
			fmt.Fprintln(stderr, "ERROR connecting to server:", setupErr.Err)
		} else {
			fmt.Fprintln(stderr, "ERROR connecting to server")
		}

	case errors.As(err, &ioErr), errors.As(err, &unknownErr), errors.Is(err, session.ErrBadIdentity):
		if debugMode {
			fmt.Fprintln(stderr, "ERROR:", err)
		} else {
			fmt.Fprintln(stdout, disconnectedMessage)
		}

	case errors.Is(err, ui.ErrInputClosed):
		fmt.Fprintln(stdout, "\nGame over.")

	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
