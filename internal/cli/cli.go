package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/amirbrooks/tasklist/internal/config"
	"github.com/amirbrooks/tasklist/internal/logging"
	"github.com/amirbrooks/tasklist/internal/render"
	"github.com/amirbrooks/tasklist/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitInternal = 10
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run loads the task file, runs the interactive session on stdin/stdout and
// writes the task file back. Diagnostics go to stderr.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	// Flags are parsed before config files are read, so help and version
	// still work next to a broken config file.
	cfg, err := config.Load(fs, args)
	if *help {
		printHelp(stdout)
		return ExitOK
	}
	if *showVersion {
		fmt.Fprintln(stdout, "tasklist", Version)
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "tasklist:", err)
		fmt.Fprintln(stderr, "Run 'tasklist --help' for usage.")
		return ExitUsage
	}

	logger := logging.New(stderr, cfg.LogLevel)
	for _, src := range cfg.Sources {
		logger.Debug("config loaded", "path", src)
	}
	for _, key := range cfg.Unknown {
		logger.Warn("unknown config key", "key", key)
	}

	file := store.OpenFile(cfg.File)
	tasks, err := file.Load()
	switch {
	case errors.Is(err, store.ErrMalformed):
		logger.Warn("task file is malformed, starting with an empty list", "path", file.Path, "err", err)
		moved, qerr := file.Quarantine()
		if qerr != nil {
			logger.Error("cannot move malformed task file aside", "path", file.Path, "err", qerr)
			return ExitInternal
		}
		logger.Warn("malformed task file kept", "path", moved)
		tasks = nil
	case err != nil:
		logger.Error("cannot read task file", "path", file.Path, "err", err)
		return ExitInternal
	}
	logger.Debug("tasks loaded", "path", file.Path, "format", file.Format.String(), "count", len(tasks))

	st := store.New(tasks...)
	table := render.NewTable(render.NewPalette(cfg.Color))
	runErr := NewSession(st, table, stdin, stdout, logger).Run()
	if runErr != nil {
		logger.Error("session aborted", "err", runErr)
	}

	if err := file.Save(st.Tasks()); err != nil {
		logger.Error("cannot save task file", "path", file.Path, "err", err)
		return ExitInternal
	}
	logger.Debug("tasks saved", "path", file.Path, "count", st.Len())
	if runErr != nil {
		return ExitInternal
	}
	return ExitOK
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `tasklist: interactive to-do list kept in a local file

Usage:
  tasklist [flags]

Flags:
  --file <path>        Task file (default: tasklist.json, or TASKLIST_FILE)
                       .yaml/.yml files are stored as YAML, anything else as JSON
  --config <path>      Config file (default: user config dir + tasklist.toml in cwd)
  --no-color           Plain table cells instead of colored swatches (or NO_COLOR)
  --log-level <level>  debug|info|warn|error (default: warn, or TASKLIST_LOG_LEVEL)
  --verbose            Same as --log-level debug
  --version
  --help

Actions (typed at the prompt):
  add      Add a task (priority, date, time, then text lines ending with a blank line)
  print    Show all tasks
  edit     Change one field of a task; an empty text deletes it
  delete   Remove a task
  end      Save and exit

Priorities:
  C critical (red)  H high (yellow)  N normal (green)  L low (blue)

Due column:
  green incoming  yellow today  red overdue
`)
}
