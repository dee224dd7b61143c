package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/jrsteele09/go-pg-admin/apiclient"
	"github.com/jrsteele09/go-pg-admin/filters"
	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/pgadmin"
	"github.com/jrsteele09/go-pg-admin/sessions"
	"github.com/jrsteele09/go-pg-admin/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// ErrExit is returned by Run when the user asks to leave the console.
var ErrExit = fmt.Errorf("exit requested: %w", io.EOF)

const (
	promptLoggedOut   = "login> "
	defaultTimeout    = 30 * time.Second
	defaultWarnBefore = 5 * time.Minute
)

// Redirects records the routes the API client asks to navigate to. The console
// acts on them between commands.
type Redirects struct {
	mu     sync.Mutex
	routes []string
}

var _ apiclient.Navigator = (*Redirects)(nil)

func (r *Redirects) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *Redirects) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	routes := r.routes
	r.routes = nil
	return routes
}

// view is the list page currently open in the console.
type view struct {
	page    pgadmin.Page
	table   *table.Table
	form    *filters.Form
	applied filters.Values
}

// CLI is the interactive admin console.
type CLI struct {
	RL     *readline.Instance
	Prompt string

	out        io.Writer
	service    *pgadmin.Service
	sessions   *sessions.Manager
	redirects  *Redirects
	sorter     *table.Sorter
	timeout    time.Duration
	warnBefore time.Duration
	warned     bool
	view       *view
	logger     zerolog.Logger
}

type Option func(*CLI)

func WithReadline(rl *readline.Instance) Option {
	return func(c *CLI) {
		c.RL = rl
	}
}

func WithOutput(w io.Writer) Option {
	return func(c *CLI) {
		c.out = w
	}
}

// WithSorter sets the collator used by client paged tables.
func WithSorter(sorter *table.Sorter) Option {
	return func(c *CLI) {
		c.sorter = sorter
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *CLI) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExpiryWarning sets how long before expiry the console starts warning.
func WithExpiryWarning(d time.Duration) Option {
	return func(c *CLI) {
		if d > 0 {
			c.warnBefore = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}

func NewCLI(service *pgadmin.Service, manager *sessions.Manager, redirects *Redirects, opts ...Option) *CLI {
	c := &CLI{
		out:        os.Stdout,
		service:    service,
		sessions:   manager,
		redirects:  redirects,
		timeout:    defaultTimeout,
		warnBefore: defaultWarnBefore,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sorter == nil {
		c.sorter = table.NewSorter(language.English)
	}
	if c.RL != nil {
		c.out = c.RL.Stdout()
	}
	manager.OnCleared(func() {
		c.view = nil
		c.warned = false
	})
	c.UpdatePrompt()
	return c
}

// Run reads and executes one line.
func (c *CLI) Run() error {
	line, err := c.RL.Readline()
	if err != nil {
		return err
	}
	err = c.Execute(line)
	c.RL.SetPrompt(c.Prompt)
	return err
}

// Execute runs one command line and then reacts to any redirect or pending
// expiry. A rejected session is reported here rather than as an error.
func (c *CLI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	err := c.ExecuteCommand(c.ParseArgs(line))
	for _, route := range c.redirects.take() {
		if route == apiclient.RouteLogin {
			c.view = nil
			c.printf("Your session has expired. Please log in again.\n")
		}
	}
	if errors.Is(err, apperrors.ErrAuthExpired) {
		err = nil
	}

	c.warnIfExpiring()
	c.UpdatePrompt()
	return err
}

// ParseArgs splits a line on spaces, keeping double quoted text together.
func (c *CLI) ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, char := range input {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			quoted = true
		case (char == ' ' || char == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(char)
		}
	}
	flush()
	return args
}

func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	switch strings.ToLower(args[0]) {
	case "login":
		return c.handleLogin(args[1:])
	case "logout":
		return c.handleLogout(args[1:])
	case "whoami":
		return c.handleWhoami(args[1:])
	case "pages":
		return c.handlePages(args[1:])
	case "open":
		return c.handleOpen(args[1:])
	case "list":
		return c.handleList(args[1:])
	case "filter":
		return c.handleFilter(args[1:])
	case "sort":
		return c.handleSort(args[1:])
	case "page":
		return c.handlePage(args[1:])
	case "next":
		return c.handleStep(1)
	case "prev":
		return c.handleStep(-1)
	case "approve":
		return c.handleDecide(args[1:], true)
	case "reject":
		return c.handleDecide(args[1:], false)
	case "upload":
		return c.handleUpload(args[1:])
	case "stats":
		return c.handleStats(args[1:])
	case "help":
		return c.handleHelp(args[1:])
	case "exit", "quit":
		c.printf("Exiting...\n")
		return ErrExit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// UpdatePrompt shows who is logged in and which page is open.
func (c *CLI) UpdatePrompt() {
	profile, ok := c.sessions.Profile()
	if !ok {
		c.Prompt = promptLoggedOut
		return
	}
	name := "staff"
	if fields := strings.Fields(profile.Name); len(fields) > 0 {
		name = strings.ToLower(fields[0])
	}
	if c.view != nil {
		c.Prompt = fmt.Sprintf("%s@%s> ", name, c.view.page.Name)
		return
	}
	c.Prompt = name + "> "
}

func (c *CLI) warnIfExpiring() {
	if c.warned || !c.sessions.WillExpireSoon(c.warnBefore) {
		return
	}
	c.warned = true
	c.printf("Warning: your session expires in %s.\n", c.sessions.TimeUntilExpiry().Round(time.Second))
}

func (c *CLI) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Completer offers command names and page names for tab completion.
func Completer() *readline.PrefixCompleter {
	pageNames := func(string) []string {
		var names []string
		for _, p := range pgadmin.Pages() {
			names = append(names, p.Name)
		}
		return names
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(commandOrder))
	for _, name := range commandOrder {
		switch name {
		case "open":
			items = append(items, readline.PcItem(name, readline.PcItemDynamic(pageNames)))
		case "filter":
			items = append(items, readline.PcItem(name,
				readline.PcItem("show"), readline.PcItem("set"), readline.PcItem("apply"), readline.PcItem("reset")))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
