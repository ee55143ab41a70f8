package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ppiankov/triagewatch/internal/eval"
	"github.com/ppiankov/triagewatch/internal/router"
	"github.com/ppiankov/triagewatch/internal/tool"
)

// watchDebounce coalesces editor write bursts into one rerun.
const watchDebounce = 200 * time.Millisecond

var (
	watchCases     string
	watchRules     string
	watchTools     string
	watchThreshold float64
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchCases, "cases", "", "Path to golden set JSONL (required)")
	watchCmd.Flags().StringVar(&watchRules, "rules", "", "Path to routing rules YAML (optional)")
	watchCmd.Flags().StringVar(&watchTools, "tools", "", "Path to tool registry YAML (optional)")
	watchCmd.Flags().Float64Var(&watchThreshold, "threshold", eval.DefaultThreshold, "Pass-rate gate in [0,1]")
	watchCmd.MarkFlagRequired("cases")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the eval whenever the golden set or rules change",
	Long: "Watches the golden set and rules files and replays the eval on every\n" +
		"change. Results print to stdout; load errors are reported and the\n" +
		"watch continues. Stop with Ctrl-C.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range []string{watchCases, watchRules, watchTools} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch directories, not files: editors replace files on save and
	// a file watch dies with the old inode.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	runOnce := func() {
		fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
		report, err := evalOnce()
		if err != nil {
			fmt.Fprintf(os.Stderr, "eval error: %v\n", err)
			return
		}
		fmt.Print(eval.FormatText(report))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	runOnce()

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)

		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nStopping watch")
			return nil
		}
	}
}

func evalOnce() (*eval.Report, error) {
	cases, err := eval.LoadCases(watchCases)
	if err != nil {
		return nil, err
	}
	rules, err := router.LoadRules(watchRules)
	if err != nil {
		return nil, err
	}
	registry, err := tool.LoadRegistry(watchTools)
	if err != nil {
		return nil, err
	}
	return eval.Run(cases, eval.Options{
		Rules:     rules,
		Simulator: tool.New(registry),
		Threshold: watchThreshold,
	})
}
