package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/manifest"
)

var (
	showCollection string
	showMesh       string
	showJSON       bool
)

var showCmd = &cobra.Command{
	Use:   "show <character>",
	Short: "Show a character's collections and mesh objects",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showCollection, "collection", "", "Collection version to select (default: the default collection)")
	showCmd.Flags().StringVar(&showMesh, "mesh", "", "Mesh object version to select (default: the default mesh object)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

type showOutput struct {
	*manifest.Character
	CurrentCollection string `json:"currentCollection"`
	CurrentMesh       string `json:"currentMayaObject"`
	LatestCollection  string `json:"latestCollection"`
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	c, err := m.Character(args[0])
	if err != nil {
		return err
	}
	if err := selectVersions(c, showCollection, showMesh); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		return printJSON(out, showOutput{
			Character:         c,
			CurrentCollection: c.CurrentCollection().Version,
			CurrentMesh:       c.CurrentMeshObject().Version,
			LatestCollection:  c.LatestCollection().Version,
		})
	}
	printCharacter(out, c)
	return nil
}

// selectVersions makes the given versions current. Empty keeps the default.
func selectVersions(c *manifest.Character, collection, mesh string) error {
	if collection != "" {
		if err := c.SetCurrentCollection(collection); err != nil {
			return err
		}
	}
	if mesh != "" {
		if err := c.SetCurrentMeshObject(mesh); err != nil {
			return err
		}
	}
	return nil
}

func printCharacter(w io.Writer, c *manifest.Character) {
	fmt.Fprintf(w, "Character: %s\n", c.Name)
	if c.AltName != "" {
		fmt.Fprintf(w, "Alt name:  %s\n", c.AltName)
	}

	fmt.Fprintln(w, "\nCollections:")
	current := c.CurrentCollection().Version
	for _, col := range c.Collections {
		fmt.Fprintf(w, "  %s %s\n", marker(col.Version == current), col.Version)
		fmt.Fprintf(w, "      maya:   %s\n", dash(col.MayaFile))
		fmt.Fprintf(w, "      xgen:   %s\n", dash(col.XGenFile))
		fmt.Fprintf(w, "      plates: %s\n", dash(strings.Join(col.HairPlates, ", ")))
	}

	fmt.Fprintln(w, "\nMesh objects:")
	currentMesh := c.CurrentMeshObject().Version
	for _, mobj := range c.MeshObjects {
		fmt.Fprintf(w, "  %s %s\n", marker(mobj.Version == currentMesh), mobj.Version)
		fmt.Fprintf(w, "      file:   %s\n", dash(mobj.OrigMeshFile))
		fmt.Fprintf(w, "      mesh:   %s\n", dash(mobj.MeshNodeName))
	}
}

func marker(current bool) string {
	if current {
		return "*"
	}
	return " "
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
