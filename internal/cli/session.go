package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ticketkit/ticket-store/internal/service"
	apperrors "github.com/ticketkit/ticket-store/pkg/util"
)

const promptText = "ticketctl> "

// errQuit ends a session without reporting a failure.
var errQuit = errors.New("quit")

// Session reads commands, runs them against a TicketService and prints results.
type Session struct {
	service  *service.TicketService
	renderer Renderer
	out      io.Writer
	errOut   io.Writer
	logger   *zap.Logger
	prompt   bool
	lastErr  *apperrors.DomainError
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Service  *service.TicketService
	Renderer Renderer
	Out      io.Writer
	ErrOut   io.Writer
	Logger   *zap.Logger
	// Prompt prints a prompt before each line, for interactive terminals.
	Prompt bool
}

// NewSession builds a session. Out and ErrOut default to io.Discard.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		service:  opts.Service,
		renderer: opts.Renderer,
		out:      opts.Out,
		errOut:   opts.ErrOut,
		logger:   opts.Logger,
		prompt:   opts.Prompt,
	}
	if s.renderer == nil {
		s.renderer = textRenderer{}
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.errOut == nil {
		s.errOut = io.Discard
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Execute runs a single command line. Blank lines and lines starting with #
// are ignored.
func (s *Session) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	name := strings.ToLower(args[0])
	if name == "quit" || name == "exit" {
		return errQuit
	}
	cmd, ok := commands[name]
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("unknown command %q, try help", args[0]), nil)
	}
	return cmd(ctx, s, args[1:])
}

// Run executes commands read from in until EOF, quit, or ctx is done.
// Command failures are reported on ErrOut and do not end the session.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		s.showPrompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read commands: %w", err)
					}
				default:
				}
				return nil
			}
			if err := s.Execute(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				s.report(line, err)
			}
		}
	}
}

// LastError returns the most recent command failure, if any.
func (s *Session) LastError() *apperrors.DomainError {
	return s.lastErr
}

func (s *Session) render(v View) error {
	if err := s.renderer.Render(s.out, v); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("render output: %w", err))
	}
	return nil
}

func (s *Session) report(line string, err error) {
	domainErr := apperrors.ToDomainError(err)
	s.lastErr = domainErr
	switch {
	case domainErr.Code == "INTERNAL_ERROR":
		s.logger.Error("command failed", zap.String("line", line), zap.Error(domainErr))
	case apperrors.IsNotFound(domainErr):
		s.logger.Debug("ticket not found", zap.String("line", line), zap.Any("details", domainErr.Details))
	default:
		s.logger.Debug("command rejected", zap.String("line", line), zap.String("code", domainErr.Code))
	}
	fmt.Fprintf(s.errOut, "error: %s: %s\n", domainErr.Code, domainErr.Message)
}

func (s *Session) showPrompt() {
	if s.prompt {
		fmt.Fprint(s.out, promptText)
	}
}
