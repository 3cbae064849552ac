package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/manifest"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the manifest whenever it changes",
	Long: `Watch the configured manifest and print a summary each time it is saved.
Every reload parses the file from scratch. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", manifest.DefaultDebounce, "Wait this long after the last change before reloading")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printSummary(cmd, m)

	w, err := manifest.NewWatcher(settings.Manifest, watchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", settings.Manifest)
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-w.Updates:
			if !ok {
				return nil
			}
			logger.Info("manifest reloaded", "path", m.Path, "characters", len(m.Characters))
			printSummary(cmd, m)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("manifest reload failed", "err", err)
			fmt.Fprintf(out, "  [FAIL] %v\n", err)
		}
	}
}

func printSummary(cmd *cobra.Command, m *manifest.Manifest) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[%s] %d character(s): %s\n",
		time.Now().Format("15:04:05"), len(m.Characters), strings.Join(m.Names(), ", "))
	for _, e := range m.Errors {
		fmt.Fprintf(out, "  [WARN] %s\n", e)
	}
}
