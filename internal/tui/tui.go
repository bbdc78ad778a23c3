// Package tui holds the interactive pieces of the diary CLI: the secret
// prompt, sign-in forms, the entry editor and the diary browser. Output that
// is only printed lives here too so every command renders the same way.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/models"
)

var errNotInteractive = errors.New("an interactive terminal is required")

// TUI runs prompts against one input and one output.
type TUI struct {
	in     io.Reader
	out    io.Writer
	lines  *bufio.Reader
	plain  bool
	copyFn func(string) error
	logger *logger.Logger
}

// Option configures a [TUI].
type Option func(*TUI)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *TUI) {
		t.in = in
		t.out = out
	}
}

// WithPlainPrompts reads the secret with the terminal's no-echo mode instead
// of the full-screen prompt.
func WithPlainPrompts(plain bool) Option {
	return func(t *TUI) { t.plain = plain }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(copyFn func(string) error) Option {
	return func(t *TUI) { t.copyFn = copyFn }
}

func New(log *logger.Logger, opts ...Option) *TUI {
	t := &TUI{
		in:     os.Stdin,
		out:    os.Stdout,
		copyFn: clipboard.WriteAll,
		logger: log,
	}
	if t.logger == nil {
		t.logger = logger.Nop()
	}
	for _, opt := range opts {
		opt(t)
	}
	t.lines = bufio.NewReader(t.in)
	return t
}

// interactive reports whether t.in is a terminal.
func (t *TUI) interactive() (int, bool) {
	f, ok := t.in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run terminal ui: %w", err)
	}
	return final, nil
}

func (t *TUI) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrUserQuit
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// form shows fields and returns their values. Without a terminal every field
// is read as one line of input.
func (t *TUI) form(ctx context.Context, title string, fields []formField) ([]string, error) {
	if _, ok := t.interactive(); !ok {
		values := make([]string, len(fields))
		for i, f := range fields {
			v, err := t.readLine(f.label + ": ")
			if err != nil {
				return nil, err
			}
			if !f.secret {
				v = strings.TrimSpace(v)
			}
			if f.required && v == "" {
				return nil, fmt.Errorf("%s is required", strings.ToLower(f.label))
			}
			values[i] = v
		}
		return values, nil
	}

	final, err := t.run(ctx, newFormModel(title, fields))
	if err != nil {
		return nil, err
	}
	result, ok := final.(formModel)
	if !ok || result.cancelled || !result.done {
		return nil, ErrUserQuit
	}
	return result.Values(), nil
}

// PromptSecret asks for the diary secret. Its signature matches
// service.SecretPrompt.
func (t *TUI) PromptSecret(ctx context.Context) (crypto.Secret, error) {
	fd, ok := t.interactive()
	if ok && t.plain {
		fmt.Fprint(t.out, "Diary secret: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		if len(b) == 0 {
			return "", ErrUserQuit
		}
		return crypto.Secret(b), nil
	}

	values, err := t.form(ctx, "Unlock your diary", []formField{
		{label: "Diary secret", secret: true, required: true},
	})
	if err != nil {
		return "", err
	}
	return crypto.Secret(values[0]), nil
}

// PromptRegister asks for the fields of a new account.
func (t *TUI) PromptRegister(ctx context.Context) (models.RegisterRequest, error) {
	values, err := t.form(ctx, "Create an account", []formField{
		{label: "Name", required: true, limit: 100},
		{label: "Email", required: true, limit: 254},
		{label: "Password", secret: true, required: true},
	})
	if err != nil {
		return models.RegisterRequest{}, err
	}
	return models.RegisterRequest{Name: values[0], Email: values[1], Password: values[2]}, nil
}

// PromptLogin asks for email and password.
func (t *TUI) PromptLogin(ctx context.Context) (models.LoginRequest, error) {
	values, err := t.form(ctx, "Sign in", []formField{
		{label: "Email", required: true, limit: 254},
		{label: "Password", secret: true, required: true},
	})
	if err != nil {
		return models.LoginRequest{}, err
	}
	return models.LoginRequest{Email: values[0], Password: values[1]}, nil
}

// EditEntry opens the editor prefilled with title and body.
func (t *TUI) EditEntry(ctx context.Context, heading, title, body string, public bool) (string, string, error) {
	if _, ok := t.interactive(); !ok {
		return "", "", errNotInteractive
	}

	final, err := t.run(ctx, newEditorModel(heading, title, body, public))
	if err != nil {
		return "", "", err
	}
	result, ok := final.(editorModel)
	if !ok || !result.saved {
		return "", "", ErrUserQuit
	}
	return result.Title(), result.Body(), nil
}

// Confirm asks a yes/no question. Without a terminal it reads "y" or "yes".
func (t *TUI) Confirm(ctx context.Context, message string) (bool, error) {
	if _, ok := t.interactive(); !ok {
		answer, err := t.readLine(message + " [y/N]: ")
		if err != nil {
			return false, err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	}

	final, err := t.run(ctx, confirmModel{message: message})
	if err != nil {
		return false, err
	}
	result, ok := final.(confirmModel)
	return ok && result.yes, nil
}

// Browse runs the full-screen diary browser until the holder quits.
func (t *TUI) Browse(ctx context.Context, diary service.ClientDiaryService) error {
	if _, ok := t.interactive(); !ok {
		return errNotInteractive
	}

	p := tea.NewProgram(newBrowseModel(ctx, diary, t.copyFn),
		tea.WithContext(ctx), tea.WithInput(t.in), tea.WithOutput(t.out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run diary browser: %w", err)
	}
	return nil
}

// Copy puts text on the clipboard.
func (t *TUI) Copy(text string) error {
	if err := t.copyFn(text); err != nil {
		t.logger.Err(err).Msg("clipboard write failed")
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Println writes rendered output followed by a newline.
func (t *TUI) Println(s string) {
	fmt.Fprintln(t.out, s)
}
