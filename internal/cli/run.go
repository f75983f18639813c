// Package cli implements the interactive drivers behind the parley command.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/aretw0/parley/pkg/domain"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	ScenarioPaths []string
	SlotPath      string
	SessionID     string
	Fresh         bool
	Debug         bool
	Plain         bool // no banner, no markdown rendering
	StorePath     string
	RedisURL      string
}

// Run starts the interactive read-print loop for one conversation.
func Run(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}

	manager, closeStore, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = "default"
	}
	if opts.Fresh {
		if err := manager.Delete(ctx, sessionID); err != nil {
			logger.Warn("failed to reset session", "session_id", sessionID, "err", err)
		}
	}

	state, loaded, err := manager.LoadOrStart(ctx, sessionID, engine.NewSession)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	if !opts.Plain {
		tui.PrintBanner(parley.Version)
	}
	if loaded {
		logger.Info("session resumed", "session_id", sessionID, "node", state.HitNode)
		if !opts.Plain {
			fmt.Printf(">>> Resuming session %q (turn %d).\n", sessionID, state.Turns)
		}
	}

	return repl(ctx, engine, manager, state, opts)
}

// repl reads utterances until EOF or /quit, printing one reply per turn.
func repl(ctx context.Context, engine *parley.Engine, manager sessionSaver, state *domain.State, opts RunOptions) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var render func(string) (string, error)
	if !opts.Plain {
		render = tui.NewRenderer()
	}

	for {
		input, err := line.Prompt("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if done, err := handleCommand(ctx, input, engine, manager, state); done {
			return err
		} else if err != nil {
			fmt.Printf(">>> %v\n", err)
			continue
		} else if strings.HasPrefix(input, "/") {
			continue
		}

		turn, err := engine.RunTurn(ctx, state, input)
		if err != nil {
			return fmt.Errorf("turn failed: %w", err)
		}

		printResponse(turn.Response, render)

		if err := manager.Save(ctx, state.SessionID, state); err != nil {
			return fmt.Errorf("critical persistence error: %w", err)
		}
	}
}

// handleCommand processes the /-prefixed REPL commands. The first return
// is true when the loop should exit.
func handleCommand(ctx context.Context, input string, engine *parley.Engine, manager sessionSaver, state *domain.State) (bool, error) {
	switch input {
	case "/quit", "/exit":
		return true, nil
	case "/state":
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return false, err
		}
		fmt.Println(string(data))
		return false, nil
	case "/reset":
		fresh := engine.NewSessionWithID(state.SessionID)
		*state = *fresh
		if err := manager.Save(ctx, state.SessionID, state); err != nil {
			return false, err
		}
		fmt.Println(">>> Session reset.")
		return false, nil
	default:
		if strings.HasPrefix(input, "/") {
			return false, fmt.Errorf("unknown command %q (try /state, /reset, /quit)", input)
		}
		return false, nil
	}
}

func printResponse(response string, render func(string) (string, error)) {
	if render != nil {
		if pretty, err := render(response); err == nil {
			fmt.Printf("bot> %s", strings.TrimLeft(pretty, "\n"))
			return
		}
	}
	fmt.Printf("bot> %s\n", response)
}

// sessionSaver is the slice of the session manager the REPL needs.
type sessionSaver interface {
	Save(ctx context.Context, sessionID string, state *domain.State) error
	Delete(ctx context.Context, sessionID string) error
	LoadOrStart(ctx context.Context, sessionID string, newState func() *domain.State) (*domain.State, bool, error)
}
