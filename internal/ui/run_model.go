package ui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/tagline/internal/jobs"
)

// RunOptions adds program wiring on top of Options.
type RunOptions struct {
	Options
	// WatchPath reloads the cards whenever the file changes. Empty disables it.
	WatchPath string
	// Reload loads the job list after a change; defaults to jobs.Load(WatchPath).
	Reload func() ([]jobs.Job, error)
	// Program options such as tea.WithInput or tea.WithWindowSize.
	ProgramOptions []tea.ProgramOption
}

// Run starts the interactive card list and blocks until the user quits.
func Run(ctx context.Context, ro RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, ro.Options)
	defer m.Stop()

	opts := ro.ProgramOptions
	if ro.Width > 0 {
		opts = append(opts, tea.WithWindowSize(ro.Width, 24))
	}
	opts = append(opts, tea.WithContext(ctx))
	prog := tea.NewProgram(m, opts...)

	if ro.WatchPath != "" {
		reload := ro.Reload
		if reload == nil {
			path := ro.WatchPath
			reload = func() ([]jobs.Job, error) { return jobs.Load(path) }
		}
		go func() {
			err := jobs.Watch(ctx, ro.WatchPath, func() {
				list, err := reload()
				prog.Send(ReloadMsg{Jobs: list, Err: err})
			}, ro.Logger)
			if err != nil {
				ro.Logger.Error(err, "jobs file watch stopped", "path", ro.WatchPath)
			}
		}()
	}

	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
