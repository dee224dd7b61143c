package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chzyer/readline"
	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-pg-admin/apiclient"
	"github.com/jrsteele09/go-pg-admin/internal/config"
	"github.com/jrsteele09/go-pg-admin/internal/console"
	"github.com/jrsteele09/go-pg-admin/pgadmin"
	"github.com/jrsteele09/go-pg-admin/sessions"
	"github.com/jrsteele09/go-pg-admin/sessions/memstore"
	"github.com/jrsteele09/go-pg-admin/sessions/sqlitestore"
	"github.com/jrsteele09/go-pg-admin/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

const (
	sessionDBFile = "session.db"
	historyFile   = "console_history"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running console")
	}
	fmt.Println("Goodbye!")
}

func run() error {
	c := config.New()
	setupLogging(c.GetLogLevel())
	displayAppname(c.GetAppName())

	durable, err := sqlitestore.Open(c.GetDataFolder(), sessionDBFile)
	if err != nil {
		return fmt.Errorf("sqlitestore.Open: %w", err)
	}
	defer func() {
		if err := durable.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing session database")
		}
	}()

	manager := sessions.NewManager(durable, memstore.New(),
		sessions.WithFallbackExpiry(c.GetFallbackSessionExpiry()))

	registry := prometheus.NewRegistry()
	redirects := &console.Redirects{}
	client := apiclient.New(c.GetAPIBaseURL(), manager, redirects,
		apiclient.WithMetrics(apiclient.NewMetrics(registry)))
	service := pgadmin.NewService(client, manager, pgadmin.WithPageSize(c.GetPageSize()))
	defer logMetrics(registry)

	lang, err := language.Parse(c.GetCollateLanguage())
	if err != nil {
		log.Warn().Err(err).Str("lang", c.GetCollateLanguage()).Msg("Unknown collation language, using English")
		lang = language.English
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     filepath.Join(c.GetDataFolder(), historyFile),
		AutoComplete:    console.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline.NewEx: %w", err)
	}
	defer rl.Close()

	cli := console.NewCLI(service, manager, redirects,
		console.WithReadline(rl),
		console.WithSorter(table.NewSorter(lang)),
		console.WithExpiryWarning(c.GetExpiryWarningThreshold()),
	)
	rl.SetPrompt(cli.Prompt)

	if profile, ok := manager.Profile(); ok {
		fmt.Printf("Welcome back, %s. Session expires in %s.\n", profile.Name, manager.TimeUntilExpiry().Round(time.Minute))
	} else {
		fmt.Println("Use 'login <email>' to start, or 'help' for the list of commands.")
	}

	for {
		err := cli.Run()
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Println("Use 'exit' or 'quit' to exit the program.")
		case errors.Is(err, io.EOF):
			return nil
		default:
			fmt.Println("Error:", err)
		}
		rl.SetPrompt(cli.Prompt)
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// logMetrics writes the request counters gathered during the session at debug level.
func logMetrics(registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		log.Debug().Err(err).Msg("Metrics not gathered")
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := log.Debug().Str("metric", family.GetName())
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				event.Float64("value", metric.GetCounter().GetValue()).Msg("API metric")
			case metric.GetHistogram() != nil:
				event.Uint64("count", metric.GetHistogram().GetSampleCount()).Float64("sum", metric.GetHistogram().GetSampleSum()).Msg("API metric")
			default:
				event.Discard()
			}
		}
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
