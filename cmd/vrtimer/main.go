package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/tui"
	"github.com/akyairhashvil/vrtimer/internal/util"
)

func main() {
	util.InstallLogging()
	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			multiLine := true
			v.AllowMultiLineMessage = &multiLine
		}),
		"json": formatter.NewJson(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := newApplication(ctx, os.Stdin, os.Stdout)
	cmd := a.commandLine()
	cmd.Flag("log.level", "Log level (trace, debug, info, warn, error).").
		SetValue(lv.Level)
	cmd.Flag("log.format", "Log format (text, json).").
		Default("text").
		SetValue(lv.Consumer.Formatter)

	if _, err := cmd.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
}

// application holds what the command line parsed and the streams commands
// talk to.
type application struct {
	ctx context.Context
	in  io.Reader
	out io.Writer

	flags      config.Configuration
	configFile string
	configSet  bool

	intervals []string
	headless  bool
	port      int
	limit     int
	clear     bool
	reportOut string
}

func newApplication(ctx context.Context, in io.Reader, out io.Writer) *application {
	return &application{ctx: ctx, in: in, out: out}
}

func (a *application) commandLine() *kingpin.Application {
	cmd := kingpin.New(config.AppName, "Interval workout timer with spoken cues.")
	cmd.Version(tui.AppVersion)
	cmd.Flag("configuration", "YAML configuration file.").
		Short('c').
		Envar("VRTIMER_CONFIGURATION").
		Default(filepath.Join(util.ConfigDir(config.AppName), config.ConfigurationFileName)).
		IsSetByUser(&a.configSet).
		StringVar(&a.configFile)
	a.flags.SetupConfiguration(cmd)

	run := cmd.Command("run", "Run a workout session (default).").Default()
	run.Flag("interval", "Interval as WORKOUT:BREAK minutes; repeat for more.").
		Short('i').
		StringsVar(&a.intervals)
	run.Flag("headless", "Run without the terminal UI; read p/r/s commands from stdin.").
		Envar("VRTIMER_HEADLESS").
		BoolVar(&a.headless)
	run.Action(func(*kingpin.ParseContext) error {
		return a.run()
	})

	serve := cmd.Command("serve", "Serve the timer settings (config.json).")
	serve.Flag("port", "Port to listen on (defaults to VR_TIMER_PORT or 5000).").
		IntVar(&a.port)
	serve.Action(func(*kingpin.ParseContext) error {
		return a.serve()
	})

	history := cmd.Command("history", "Show recent sessions and totals.")
	history.Flag("limit", "Number of sessions to show; 0 shows all.").
		Default(fmt.Sprint(config.DefaultHistoryLimit)).
		IntVar(&a.limit)
	history.Flag("clear", "Delete the recorded history.").
		BoolVar(&a.clear)
	history.Action(func(*kingpin.ParseContext) error {
		return a.history()
	})

	report := cmd.Command("report", "Write the session history as a PDF report.")
	report.Flag("out", "Output file (defaults to the reports directory).").
		Short('o').
		StringVar(&a.reportOut)
	report.Action(func(*kingpin.ParseContext) error {
		return a.report()
	})
	return cmd
}

// configuration layers the command line over the configuration file and
// the defaults. A missing default file is not an error.
func (a *application) configuration() (config.Configuration, error) {
	fromFile, err := config.LoadConfigurationFile(a.configFile, !a.configSet)
	if err != nil {
		return config.Configuration{}, err
	}
	cfg, err := config.Resolve(a.flags, fromFile)
	if err != nil {
		return config.Configuration{}, err
	}
	if !tui.SetTheme(cfg.Theme) {
		log.With("theme", cfg.Theme).
			With("available", tui.ThemeNames()).
			Warn("Unknown theme, using default.")
	}
	return cfg, nil
}

func historyFile(cfg config.Configuration) string {
	if cfg.HistoryFile != "" {
		return cfg.HistoryFile
	}
	return filepath.Join(util.DataDir(config.AppName), config.DBFileName)
}

func (a *application) openHistory(cfg config.Configuration) (*database.Database, error) {
	db, err := database.Open(a.ctx, historyFile(cfg))
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return db, nil
}
