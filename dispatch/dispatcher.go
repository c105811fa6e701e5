package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	disha "github.com/margdarshak/disha"
)

// Factory builds a ready-to-serve chat service from the initialize
// parameters. Construction of providers and the build-vs-load decision live
// behind this seam so the command loop stays free of wiring and tests can
// substitute fakes.
type Factory func(ctx context.Context, careersPath string, persistDir string, provider string) (*disha.Service, error)

type State int

const (
	Uninitialized State = iota
	Initialized
)

// Dispatcher owns the service lifecycle. State moves Uninitialized →
// Initialized on the first successful initialize and stays there; further
// initialize commands replace the live instance. All mutation happens on the
// Run goroutine.
type Dispatcher struct {
	factory Factory
	state   State
	service *disha.Service
	ready   atomic.Bool
}

func New(factory Factory) *Dispatcher {
	if factory == nil {
		panic("service factory is required")
	}

	return &Dispatcher{
		factory: factory,
	}
}

// Ready reports whether initialize has succeeded at least once. Safe to call
// from other goroutines.
func (d *Dispatcher) Ready() bool {
	return d.ready.Load()
}

// Run reads one command per line from r and writes exactly one response line
// to w for it, flushing after every write, until r reaches end-of-input.
// Blank lines are skipped. Lines are read with a growable buffer so large
// history payloads never end the loop early. A failure while handling a
// command becomes an error response for that command alone; the loop itself
// stops only at end-of-input.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReaderSize(r, 64*1024)
	out := bufio.NewWriter(w)

	for {
		line, readErr := in.ReadString('\n')

		if trimmed := strings.TrimSpace(line); len(trimmed) > 0 {
			rsp := d.dispatch(ctx, trimmed)

			data, err := json.Marshal(rsp)
			if err != nil {
				data, _ = json.Marshal(errorResponse(fmt.Sprintf("failed to encode response: %v", err)))
			}

			out.Write(data)
			out.WriteByte('\n')
			if err := out.Flush(); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, line string) (rsp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("recovered from panic while handling command", "panic", rec)
			rsp = errorResponse(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	var cmd Command
	if err := json.Unmarshal([]byte(line), &cmd); err != nil {
		return errorResponse(fmt.Sprintf("invalid command payload: %v", err))
	}

	switch cmd.Command {
	case CommandInitialize:
		return d.handleInitialize(ctx, cmd)
	case CommandChat:
		return d.handleChat(ctx, cmd)
	case CommandGreeting:
		return d.handleGreeting(ctx, cmd)
	default:
		return errorResponse(fmt.Sprintf("unknown command: %s", cmd.Command))
	}
}

func (d *Dispatcher) handleInitialize(ctx context.Context, cmd Command) Response {
	provider := cmd.Provider
	if len(provider) == 0 {
		provider = DefaultProvider
	}

	svc, err := d.factory(ctx, cmd.CareersJSONPath, cmd.ChromaPersistDir, provider)
	if err != nil {
		// a failed re-initialize keeps the previous instance serving
		return errorResponse(err.Error())
	}

	d.service = svc
	d.state = Initialized
	d.ready.Store(true)

	slog.Info("service initialized", "provider", provider, "corpus", cmd.CareersJSONPath)

	return Response{
		Status:  StatusSuccess,
		Message: "RAG service initialized",
	}
}

func (d *Dispatcher) handleChat(ctx context.Context, cmd Command) Response {
	if d.state != Initialized {
		return errorResponse("Service not initialized. Call 'initialize' first.")
	}

	answer := d.service.Chat(ctx, cmd.Message, cmd.ChatHistory, language(cmd))

	return Response{
		Status: StatusSuccess,
		Data:   &answer,
	}
}

func (d *Dispatcher) handleGreeting(ctx context.Context, cmd Command) Response {
	if d.state != Initialized {
		return errorResponse("Service not initialized. Call 'initialize' first.")
	}

	answer := d.service.Greeting(ctx, cmd.AssessmentSummary, language(cmd))

	return Response{
		Status: StatusSuccess,
		Data:   &answer,
	}
}

func language(cmd Command) string {
	if len(cmd.Language) == 0 {
		return disha.DefaultLanguage
	}
	return cmd.Language
}
