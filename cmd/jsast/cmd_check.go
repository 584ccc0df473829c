package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jsast/format"
	"github.com/dhamidi/jsast/js/codebase"
	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/project"
)

func newCheckCmd() *cobra.Command {
	var colorMode string
	var stats bool
	var source bool
	var jobs int
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report syntax errors in every source file of a project",
		Long: `Parse every source file below dir and report syntax errors.

Files are discovered according to .jsast.yaml and .gitignore in dir. The
command fails if any file has errors. With --watch it keeps running and
rechecks files as they change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			colored, err := useColor(colorMode)
			if err != nil {
				return err
			}
			p, err := project.Load(dir)
			if err != nil {
				return err
			}

			enc := format.NewDiagnosticEncoder(os.Stdout)
			enc.SetColor(colored)
			enc.SetSource(source)

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchProject(ctx, p, enc)
			}

			results, err := checkProject(cmd.Context(), p, jobs)
			if err != nil {
				return err
			}
			table := format.NewStatsTable(os.Stdout)
			failed := 0
			for _, r := range results {
				if r.err != nil {
					fmt.Fprintln(os.Stderr, r.err)
					failed++
					continue
				}
				if err := enc.Encode(r.res); err != nil {
					return err
				}
				if r.res.HasErrors() {
					failed++
				}
				table.Add(r.res, r.elapsed)
			}
			if stats {
				table.Render()
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files have errors", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize output (auto, always, never)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print a table of per-file statistics")
	cmd.Flags().BoolVar(&source, "source", true, "show the offending source line")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files parsed in parallel")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recheck files when they change")

	return cmd
}

type checkResult struct {
	path    string
	res     *parser.Result
	elapsed time.Duration
	// err is set when the file could not be parsed at all, for example
	// because it is not valid UTF-8.
	err     error
}

// checkProject parses every source file of p, jobs at a time, and returns
// the results in file order. A file that cannot be parsed gets a result
// with err set; only configuration errors stop the check.
func checkProject(ctx context.Context, p *project.Project, jobs int) ([]checkResult, error) {
	paths, err := p.Files()
	if err != nil {
		return nil, err
	}
	srcs, err := project.ReadSources(ctx, paths)
	if err != nil {
		return nil, err
	}

	results := make([]checkResult, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, src := range srcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := p.ParserConfig(src.Path)
			if err != nil {
				return err
			}
			rel := relPath(p.RootDir, src.Path)
			start := time.Now()
			res, err := parser.ParseBytes(src.Text, cfg, parser.WithFile(rel))
			if err != nil {
				results[i] = checkResult{path: rel, err: err}
				return nil
			}
			results[i] = checkResult{path: rel, res: res, elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func watchProject(ctx context.Context, p *project.Project, enc *format.DiagnosticEncoder) error {
	cb := codebase.New(p)
	w := codebase.NewFileWatcher(cb)
	w.OnUpdate = func(f *codebase.FileInfo) {
		if f.Result.IsValid() {
			fmt.Printf("%s: ok\n", relPath(p.RootDir, f.Path))
			return
		}
		if err := enc.Encode(f.Result); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	w.OnRemove = func(path string) {
		fmt.Printf("%s: removed\n", relPath(p.RootDir, path))
	}
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
