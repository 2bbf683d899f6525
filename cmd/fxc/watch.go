package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gogpu/fxc"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <input.fx>",
		Short: "Recompile an FX file whenever it changes",
		Long: `watch compiles the input once, then again after every change.
Bursts of file events within the debounce window ([watch] debounce,
default 200ms) trigger a single compile. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runWatch,
	}
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	opts, cfg, err := a.compileOptions(cmd, input)
	if err != nil {
		return err
	}
	return a.watch(ctx, input, opts, cfg.Watch.Debounce.Duration)
}

// watch recompiles input after changes until ctx is cancelled. Compile
// failures are reported and watching continues.
func (a *app) watch(ctx context.Context, input string, opts fxc.CompileOptions, debounce time.Duration) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	compile := func() {
		if _, err := fxc.CompileFile(input, opts); err != nil {
			a.diag.print(err)
		}
	}
	compile()
	logger.Info("watching for changes", "input", input)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != input {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				logger.Debug("ignoring event", "op", event.Op.String())
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.Info("input changed, recompiling", "input", input)
			compile()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
