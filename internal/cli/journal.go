package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/pipeline"
	"github.com/initcard/lettuce/internal/userdata"
)

// writeJournal writes the recorded ops to out: "-" is stdout, empty saves a
// timestamped file under ~/.lettuce/journals.
func writeJournal(cmd *cobra.Command, j *pipeline.Journal, out, kind string) error {
	if out == "-" {
		return j.Encode(cmd.OutOrStdout())
	}
	if out == "" {
		dir, err := userdata.GetJournalsDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		out = filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", kind, time.Now().Format("20060102-150405")))
	}
	if err := j.Save(out); err != nil {
		return err
	}
	logger.Info("journal saved", "path", out, "ops", len(j.Ops))
	fmt.Fprintf(cmd.ErrOrStderr(), "Journal: %s (%d op(s))\n", out, len(j.Ops))
	return nil
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		logger.Warn(w)
		fmt.Fprintf(cmd.ErrOrStderr(), "  [WARN] %s\n", w)
	}
}

// progressPrinter prints one line per processed character.
func progressPrinter(cmd *cobra.Command) pipeline.ProgressFunc {
	return func(step, total int, label string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s\n", step, total, label)
	}
}
