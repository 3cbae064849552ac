package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var charactersJSON bool

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List the characters in the manifest",
	RunE:  runCharacters,
}

func init() {
	charactersCmd.Flags().BoolVar(&charactersJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(charactersCmd)
}

func runCharacters(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if charactersJSON {
		return printJSON(out, m)
	}

	if len(m.Characters) == 0 {
		fmt.Fprintln(out, "No characters in manifest.")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tALT NAME\tCOLLECTIONS\tDEFAULT\tMESH")
		for _, c := range m.Characters {
			alt := c.AltName
			if alt == "" {
				alt = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name, alt,
				strings.Join(c.SortedVersions(), ","),
				c.DefaultCollection().Version,
				c.DefaultMeshObject().MeshNodeName)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(m.Errors) > 0 {
		fmt.Fprintf(out, "\nDropped %d element(s):\n", len(m.Errors))
		for _, e := range m.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}
	return nil
}
