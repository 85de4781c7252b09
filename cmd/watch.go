package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/bpschema/cli"
	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/logging"
	"github.com/grovetools/bpschema/pkg/watch"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	opts := &generateOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [serializer...]",
		Short: "Regenerate schemas whenever the catalog or config changes",
		Long: `Generates into the output directory, then watches the catalog file and
bpschema.yml and regenerates after each change. Errors are reported and the
watch continues. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts, args, debounce)
		},
	}

	opts.addCatalogFlags(cmd.Flags())
	opts.addModelFlags(cmd.Flags())
	opts.addOutputFlags(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *generateOptions, args []string, debounce time.Duration) error {
	logger := cli.GetLogger(cmd)
	pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())

	s, err := newSession(cmd, opts)
	if err != nil {
		return err
	}

	dir := opts.resolveOutDir(s.cfg)
	if dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "watch needs an output directory: pass --out or set output.dir")
	}

	regenerate := func(s *session) {
		names, err := s.selectNames(args)
		if err != nil {
			pretty.StepFailed("Selection", err)
			return
		}
		progress := cli.NewProgressReporter(cmd.ErrOrStderr())
		if err := s.writeAll(names, dir, progress); err != nil {
			pretty.StepFailed("Generation", err)
		}
		progress.Done()
	}
	regenerate(s)

	paths := []string{s.catalogPath}
	if s.cfg.Path() != "" {
		paths = append(paths, s.cfg.Path())
	}

	w, err := watch.New(paths, debounce, func(path string) {
		logger.WithField("path", path).Debug("Reloading")
		next, err := newSession(cmd, opts)
		if err != nil {
			pretty.StepFailed("Reload", err)
			return
		}
		regenerate(next)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to start watcher")
	}

	for _, p := range paths {
		pretty.Source("Watching", p)
	}

	if err := w.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
