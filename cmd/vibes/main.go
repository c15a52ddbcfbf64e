package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mgomes/vecscript/heap"
	"github.com/mgomes/vecscript/vibes"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

type engineFlags struct {
	configPath  *string
	vectorKind  *string
	memoryQuota *int
	stepQuota   *int
	logLevel    *string
}

func registerEngineFlags(fs *flag.FlagSet) engineFlags {
	return engineFlags{
		configPath:  fs.String("config", "", "YAML config file"),
		vectorKind:  fs.String("vector-kind", "", "vector representation: native or boxed"),
		memoryQuota: fs.Int("memory-quota", 0, "heap limit per script in bytes"),
		stepQuota:   fs.Int("step-quota", 0, "maximum evaluation steps per script"),
		logLevel:    fs.String("log-level", "", "log level: debug, info, warn or error"),
	}
}

// build loads the config file, overlays the flags that were set and
// constructs the engine.
func (f engineFlags) build() (*vibes.Engine, *zap.Logger, error) {
	cfg, err := loadConfig(*f.configPath)
	if err != nil {
		return nil, nil, err
	}
	if *f.vectorKind != "" {
		cfg.VectorKind = *f.vectorKind
	}
	if *f.memoryQuota > 0 {
		cfg.MemoryQuotaBytes = *f.memoryQuota
	}
	if *f.stepQuota > 0 {
		cfg.StepQuota = *f.stepQuota
	}
	if *f.logLevel != "" {
		cfg.LogLevel = *f.logLevel
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	cfg.Logger = logger
	engine, err := vibes.NewEngine(cfg.Config)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return engine, logger, nil
}

type compiledScript struct {
	path   string
	script *vibes.Script
}

type scriptResult struct {
	path   string
	output string
	isNil  bool
	stats  heap.Stats
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	engineOpts := registerEngineFlags(fs)
	checkOnly := fs.Bool("check", false, "only compile the scripts without executing")
	showStats := fs.Bool("stats", false, "print heap statistics after each script")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return errors.New("vibes run: script path required")
	}

	engine, logger, err := engineOpts.build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scripts := make([]compiledScript, 0, len(paths))
	for _, path := range paths {
		input, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := engine.Compile(string(input))
		if err != nil {
			return fmt.Errorf("compile %s failed: %w", path, err)
		}
		scripts = append(scripts, compiledScript{path: path, script: script})
	}
	if *checkOnly {
		return nil
	}

	results, err := runScripts(context.Background(), engine, scripts)
	if err != nil {
		return err
	}
	logger.Info("scripts finished", zap.Int("count", len(results)))
	for _, res := range results {
		if !res.isNil {
			fmt.Println(res.output)
		}
		if *showStats {
			writeStats(os.Stdout, res.path, res.stats)
		}
	}
	return nil
}

// runScripts runs each script in its own State, concurrently. Results keep
// the order of scripts. The first failure cancels the remaining runs.
func runScripts(ctx context.Context, engine *vibes.Engine, scripts []compiledScript) ([]scriptResult, error) {
	results := make([]scriptResult, len(scripts))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range scripts {
		g.Go(func() error {
			st, err := engine.NewState()
			if err != nil {
				return fmt.Errorf("%s: %w", s.path, err)
			}
			defer st.Close()

			result, err := s.script.Run(ctx, st)
			if err != nil {
				return fmt.Errorf("%s: execution failed: %w", s.path, err)
			}
			results[i] = scriptResult{
				path:   s.path,
				output: result.String(),
				isNil:  result.IsNil(),
				stats:  st.HeapStats(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeStats(w io.Writer, path string, stats heap.Stats) {
	fmt.Fprintf(w, "%s: heap %s live in %s objects, %s freed over %d cycles (%s allocations)\n",
		filepath.Base(path),
		humanize.IBytes(uint64(stats.Allocated)),
		humanize.Comma(int64(stats.Objects)),
		humanize.IBytes(uint64(stats.FreedBytes)),
		stats.Cycles,
		humanize.Comma(int64(stats.Allocations)),
	)
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	engineOpts := registerEngineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, logger, err := engineOpts.build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	return runREPL(engine)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s run [flags] <script>...\n", prog)
	fmt.Fprintf(os.Stderr, "       %s repl [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintln(os.Stderr, "    YAML config file (step_quota, memory_quota_bytes, vector_kind, gc, log_level)")
	fmt.Fprintln(os.Stderr, "  -vector-kind native|boxed")
	fmt.Fprintln(os.Stderr, "    vector representation exposed as vec (default native)")
	fmt.Fprintln(os.Stderr, "  -memory-quota <bytes>")
	fmt.Fprintln(os.Stderr, "    heap limit per script")
	fmt.Fprintln(os.Stderr, "  -step-quota <n>")
	fmt.Fprintln(os.Stderr, "    maximum evaluation steps per script")
	fmt.Fprintln(os.Stderr, "  -log-level <level>")
	fmt.Fprintln(os.Stderr, "    debug, info, warn or error (default warn)")
	fmt.Fprintln(os.Stderr, "  -stats")
	fmt.Fprintln(os.Stderr, "    print heap statistics after each script (run only)")
	fmt.Fprintln(os.Stderr, "  -check")
	fmt.Fprintln(os.Stderr, "    only compile the scripts without executing (run only)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
