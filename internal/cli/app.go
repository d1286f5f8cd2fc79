package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/dmitrijs2005/fleetcheck/internal/logging"
	"github.com/dmitrijs2005/fleetcheck/internal/services"
	"github.com/dmitrijs2005/fleetcheck/internal/session"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// App holds the services the REPL commands drive and the I/O they use.
type App struct {
	sessions   *session.Manager
	checklists services.ChecklistService
	gatherer   prometheus.Gatherer
	log        logging.Logger
	reader     *bufio.Reader
	out        io.Writer
	rng        *rand.Rand
	exportDir  string
}

type Option func(*App)

func WithInput(r io.Reader) Option {
	return func(a *App) { a.reader = bufio.NewReader(r) }
}

func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithGatherer enables the stats command.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(a *App) { a.gatherer = g }
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithRand fixes the source used by autofill.
func WithRand(r *rand.Rand) Option {
	return func(a *App) { a.rng = r }
}

// WithExportDir sets where export writes documents. Defaults to ".".
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

func NewApp(sessions *session.Manager, checklists services.ChecklistService, opts ...Option) *App {
	a := &App{
		sessions:   sessions,
		checklists: checklists,
		log:        logging.NewNop(),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		exportDir:  ".",
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run restores the persisted session and starts the REPL. It returns when
// the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.sessions.Bootstrap(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to FleetCheck CLI (type 'help' for commands)")
	if s, ok := a.sessions.Current(); ok {
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Account.Email)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	a.log.Debug(ctx, "repl finished", "cancelled", ctx.Err() != nil)
	return nil
}

func (a *App) current() *session.Session {
	s, _ := a.sessions.Current()
	return s
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) status() string {
	s, ok := a.sessions.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.Account.Email, s.Account.Role)
}

// readSecret reads a password without echo from a terminal, or as a plain
// line when input is piped.
func (a *App) readSecret() ([]byte, error) {
	if isTerminal(int(os.Stdin.Fd())) {
		return GetPassword(a.out)
	}
	fmt.Fprint(a.out, "Enter password: ")
	line, err := readLine(a.reader)
	fmt.Fprintln(a.out)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}
