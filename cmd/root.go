package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/jobs"
	"github.com/oakwood-commons/tagline/internal/limiter"
	"github.com/oakwood-commons/tagline/internal/measure"
	"github.com/oakwood-commons/tagline/internal/resize"
	"github.com/oakwood-commons/tagline/internal/tagrow"
	"github.com/oakwood-commons/tagline/internal/ui"
	"github.com/oakwood-commons/tagline/pkg/logger"
	"github.com/oakwood-commons/tagline/pkg/settings"
)

// errShowHelp is returned by loadJobs when no input is provided and help should be shown.
var errShowHelp = errors.New("no input provided")

const defaultFallbackTermWidth = 80

// clearScreen homes the cursor and clears the terminal before a redraw.
const clearScreen = "\x1b[H\x1b[2J"

// Persistent flags shared by every command.
var (
	configFile string
	themeName  string
	debug      bool
	noColor    bool
)

// rowFlags are the label row flags; the root and fit commands each own a set.
type rowFlags struct {
	size       badge.Variant
	gap        int
	minVisible int
	fallback   string
	metrics    string
	class      string
}

var (
	renderFlags = rowFlags{size: badge.DefaultVariant}
	interactive bool
	where       string
	detail      bool
	watch       bool
	follow      bool
	renderWidth int
	limits      limiter.Config
)

var rootCtx = context.Background()

var (
	stdinIsPiped     = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	openTerminalIOFn = openTerminalIO
	termGetSize      = term.GetSize
	newTTYSource     = func(fd uintptr) resize.Source { return resize.NewTTYSource(fd) }
	sendWindowSize   = func(p *tea.Program, msg tea.WindowSizeMsg) { p.Send(msg) }
	runBoard         = ui.Run
)

func runLogger() logr.Logger {
	return *logger.FromContext(rootCtx)
}

// detectTerminalSize probes stdout, stderr and stdin, then $COLUMNS.
func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := termGetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}

// loadJobs reads the job listing from the file argument or piped stdin.
func loadJobs(cmd *cobra.Command, args []string, run *settings.Run) ([]jobs.Job, error) {
	if len(args) == 1 && args[0] != "-" {
		run.Source, run.Path = settings.InputFile, args[0]
		return jobs.Load(args[0])
	}
	if len(args) == 1 || stdinIsPiped() {
		run.Source = settings.InputStdin
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return jobs.Decode(data)
	}
	return nil, errShowHelp
}

// buildRows creates one independent label row per job.
func buildRows(list []jobs.Job, rs rowSettings, p measure.Provider, useDetail bool, log logr.Logger) []*tagrow.Row {
	rows := make([]*tagrow.Row, 0, len(list))
	for _, j := range list {
		tags := j.CardTags()
		if useDetail {
			tags = j.DetailTags()
		}
		rows = append(rows, tagrow.New(tagrow.Options{
			Labels:     tags,
			Fallback:   rs.Fallback,
			Variant:    rs.Variant,
			Palette:    rs.Theme.Palette,
			NoColor:    rs.NoColor,
			Class:      rs.Class,
			Provider:   p,
			Gap:        rs.Gap,
			MinVisible: rs.MinVisible,
			Logger:     logger.ForRow(log, j.ID),
		}))
	}
	return rows
}

// writeBoard prints a title line and the fitted label row for every job.
func writeBoard(w io.Writer, list []jobs.Job, rows []*tagrow.Row, rs rowSettings) error {
	title := lipgloss.NewStyle()
	muted := lipgloss.NewStyle()
	if !rs.NoColor {
		title = title.Bold(true)
		if rs.Theme.TitleFG != nil {
			title = title.Foreground(rs.Theme.TitleFG)
		}
		if rs.Theme.MutedFG != nil {
			muted = muted.Foreground(rs.Theme.MutedFG)
		}
	}
	for i, j := range list {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		line := title.Render(j.Title)
		meta := make([]string, 0, 2)
		for _, s := range []string{j.Company, j.Location} {
			if s != "" {
				meta = append(meta, s)
			}
		}
		if len(meta) > 0 {
			line += " " + muted.Render(strings.Join(meta, " · "))
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", line, rows[i].View()); err != nil {
			return err
		}
	}
	return nil
}

func resizeAll(rows []*tagrow.Row, width int) {
	for _, r := range rows {
		r.Resize(width)
	}
}

// renderFollow redraws the board whenever src reports a new width, until
// interrupted or a write fails. A nil or unavailable src renders once.
func renderFollow(ctx context.Context, w io.Writer, src resize.Source, list []jobs.Job, rows []*tagrow.Row, rs rowSettings, width int, log logr.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// redraw runs on the source's goroutine after the first call.
	var (
		mu      sync.Mutex
		drawErr error
	)
	redraw := func(width int) {
		mu.Lock()
		defer mu.Unlock()
		if drawErr != nil {
			return
		}
		resizeAll(rows, width)
		_, err := fmt.Fprint(w, clearScreen)
		if err == nil {
			err = writeBoard(w, list, rows, rs)
		}
		if err != nil {
			drawErr = err
			cancel()
		}
	}

	sched := resize.New(src, redraw, log)
	sched.Start(ctx, width)
	if !sched.Degraded() {
		<-ctx.Done()
	}
	sched.Stop()

	mu.Lock()
	defer mu.Unlock()
	return drawErr
}

func runRender(cmd *cobra.Command, args []string) error {
	run, ok := settings.FromContext(rootCtx)
	if !ok {
		run = settings.NewCliParams()
	}
	log := runLogger()

	cfg, err := loadMergedConfig(configFile)
	if err != nil {
		return err
	}
	rs, err := resolveRowSettings(cmd, cfg, &renderFlags)
	if err != nil {
		return err
	}
	provider, err := rs.terminalProvider()
	if err != nil {
		return err
	}
	if err := limits.Validate(); err != nil {
		return err
	}

	list, err := loadJobs(cmd, args, run)
	if err != nil {
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		return err
	}
	if list, err = jobs.Apply(list, where); err != nil {
		return fmt.Errorf("--where: %w", err)
	}
	list = limiter.Apply(limits, list)
	log.V(1).Info("jobs loaded", "source", string(run.Source), "count", len(list))

	if watch && run.Source != settings.InputFile {
		return fmt.Errorf("--watch requires a jobs file argument")
	}

	if interactive {
		run.Interactive = true
		opts, cleanup := getProgramOptions()
		defer cleanup()
		ro := ui.RunOptions{
			Options: ui.Options{
				Jobs:       list,
				Detail:     detail,
				Title:      cfg.App.Name,
				Variant:    rs.Variant,
				Fallback:   rs.Fallback,
				Theme:      rs.Theme,
				NoColor:    rs.NoColor,
				Class:      rs.Class,
				Provider:   func(func(badge.Variant) badge.Styles) measure.Provider { return provider },
				Gap:        rs.Gap,
				MinVisible: rs.MinVisible,
				Width:      renderWidth,
				Logger:     log,
			},
			ProgramOptions: opts,
		}
		if watch {
			ro.WatchPath = run.Path
			filter := where
			ro.Reload = func() ([]jobs.Job, error) {
				reloaded, err := jobs.Load(run.Path)
				if err != nil {
					return nil, err
				}
				if reloaded, err = jobs.Apply(reloaded, filter); err != nil {
					return nil, err
				}
				return limiter.Apply(limits, reloaded), nil
			}
		}
		return runBoard(rootCtx, ro)
	}

	width := renderWidth
	if width <= 0 {
		width, _ = detectTerminalSize()
	}
	rows := buildRows(list, rs, provider, detail, log)
	if follow {
		// A forced width ignores the terminal, like the interactive board.
		var src resize.Source
		if renderWidth <= 0 {
			src = newTTYSource(os.Stdout.Fd())
		}
		return renderFollow(rootCtx, cmd.OutOrStdout(), src, list, rows, rs, width, log)
	}
	resizeAll(rows, width)
	return writeBoard(cmd.OutOrStdout(), list, rows, rs)
}

// getProgramOptions handles piped stdin by reopening the terminal for interactive input/output.
// This keeps keyboard input and resize events working while the job list arrives on stdin.
func getProgramOptions() ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// /dev/tty not available (e.g., in some CI environments)
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut), withTTYResizeWatcher(ctx, ttyOut))
	}

	return opts, func() {
		cancel()
		cleanup()
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}

	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}

	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}

	return "/dev/tty", "/dev/tty"
}

// withTTYResizeWatcher forwards terminal width changes as WindowSizeMsg when
// resize signals are unreliable (e.g., piped stdin on Windows). It is
// best-effort and stops when ctx is canceled.
func withTTYResizeWatcher(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		if ctx == nil || out == nil {
			return
		}
		fd := out.Fd()
		stop, err := newTTYSource(fd).Subscribe(ctx, func(width int) {
			_, h, _ := termGetSize(int(fd))
			sendWindowSize(p, tea.WindowSizeMsg{Width: width, Height: h})
		})
		if err != nil {
			return
		}
		go func() {
			<-ctx.Done()
			stop()
		}()
	}
}

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Fit job-card label rows onto a single line",
	Long: `tagline renders job listings with their labels fitted to one line.
Labels that do not fit collapse into a trailing "+N" badge, and the row
refits whenever the available width changes.

Jobs are read from a YAML or JSON file (a list, or a mapping with a "jobs"
key) or from stdin.`,
	Example: "\n  tagline jobs.yaml\n  tagline jobs.yaml --width 40 --size xs\n  tagline jobs.yaml --where '\"Go\" in job.tags'\n  tagline jobs.yaml -i --watch\n  cat jobs.json | tagline --detail\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Map CLI debug flag to log level: debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level).WithValues(logger.CommandKey, cmd.Name())
		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.NoColor = noColor
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, &lgr)
		rootCtx = settings.IntoContext(ctx, run)
	},
	RunE:          runRender,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// addRowFlags registers the label row flags shared by the root and fit commands.
func addRowFlags(cmd *cobra.Command, f *rowFlags, metricsHelp string) {
	cmd.Flags().Var(&f.size, "size", "badge size: xs|sm (default from config)")
	cmd.Flags().IntVar(&f.gap, "gap", 1, "space between badges (default from config)")
	cmd.Flags().IntVar(&f.minVisible, "min-visible", 2, "labels kept visible before the overflow badge is reserved (default from config)")
	cmd.Flags().StringVar(&f.fallback, "fallback", tagrow.DefaultFallback, "label shown when a job has no labels (default from config)")
	cmd.Flags().StringVar(&f.metrics, "metrics", measure.BackendCell, metricsHelp)
}

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file (themes, classes, fit defaults)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "theme name (default from config; see 'tagline config themes')")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")

	addRowFlags(rootCmd, &renderFlags, "measurement backend: cell|rune")
	rootCmd.Flags().StringVar(&renderFlags.class, "class", "", "style class from config wrapped around each label row")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the interactive board")
	rootCmd.Flags().StringVar(&where, "where", "", "CEL filter over 'job', e.g. '\"Go\" in job.tags'")
	rootCmd.Flags().BoolVar(&detail, "detail", false, "use the detail tags (tags, else skills) instead of the card tags")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload the board when the jobs file changes (with -i)")
	rootCmd.Flags().BoolVar(&follow, "follow", false, "redraw when the terminal width changes until interrupted")
	rootCmd.Flags().IntVar(&limits.Limit, "limit", 0, "show only the first N jobs after filtering")
	rootCmd.Flags().IntVar(&limits.Offset, "offset", 0, "skip the first N jobs after filtering")
	rootCmd.Flags().IntVar(&limits.Tail, "tail", 0, "show only the last N jobs (exclusive with --limit)")
	rootCmd.Flags().IntVar(&renderWidth, "width", 0, "layout width in columns (default: terminal width, else 80)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fitCmd)
	configCmd.AddCommand(configThemesCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
