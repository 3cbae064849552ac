package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/pipeline"
)

var setsOut string

var deleteSetCmd = &cobra.Command{
	Use:   "delete-set <character>",
	Short: "Record removal of a character's hair set and its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := setJournal(args[0])
		if err != nil {
			return err
		}
		name := pipeline.HairSetName(args[0])
		warnings, err := pipeline.DeleteSet(j, name)
		printWarnings(cmd, warnings)
		if err != nil {
			return err
		}
		if len(j.Ops) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s does not exist\n", name)
			return nil
		}
		return writeJournal(cmd, j, setsOut, "delete-set")
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <character>",
	Short: "Record unlocking of the locked nodes in a character's hair set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := setJournal(args[0])
		if err != nil {
			return err
		}
		unlocked, err := pipeline.UnlockNodes(j, pipeline.HairSetName(args[0]))
		if err != nil {
			return err
		}
		if len(unlocked) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to unlock.")
			return nil
		}
		if setsOut != "-" {
			for _, n := range unlocked {
				fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] %s\n", n)
			}
		}
		return writeJournal(cmd, j, setsOut, "unlock")
	},
}

func init() {
	for _, c := range []*cobra.Command{deleteSetCmd, unlockCmd} {
		c.Flags().StringVarP(&setsOut, "out", "o", "", "Journal file ('-' for stdout, default: ~/.lettuce/journals)")
		rootCmd.AddCommand(c)
	}
}

// setJournal checks the character exists and opens a journal over the scene.
func setJournal(character string) (*pipeline.Journal, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}
	if _, err := m.Character(character); err != nil {
		return nil, err
	}
	snap, err := loadSnapshot()
	if err != nil {
		return nil, err
	}
	return pipeline.NewJournal(snap), nil
}
