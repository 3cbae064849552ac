package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/pipeline"
)

var (
	wrapCollection string
	wrapMesh       string
	wrapNamespace  string
	wrapOut        string
)

var wrapCmd = &cobra.Command{
	Use:   "wrap <character>",
	Short: "Record wrapping a character's hair plates onto its mesh",
	Long: `Record the steps that bind every hair plate of the character's collection to
its mesh with a wrap deformer. Deformers on the mesh are switched off while
binding and back on afterwards. The mesh is looked up in the namespace of the
reference the character was found through unless --namespace is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runWrap,
}

func init() {
	wrapCmd.Flags().StringVar(&wrapCollection, "collection", "", "Collection version (default: the default collection)")
	wrapCmd.Flags().StringVar(&wrapMesh, "mesh", "", "Mesh object version (default: the default mesh object)")
	wrapCmd.Flags().StringVar(&wrapNamespace, "namespace", "", "Namespace of the character mesh")
	wrapCmd.Flags().StringVarP(&wrapOut, "out", "o", "", "Journal file ('-' for stdout, default: ~/.lettuce/journals)")
	rootCmd.AddCommand(wrapCmd)
}

func runWrap(cmd *cobra.Command, args []string) error {
	st, err := resolveScene(cmd.Context())
	if err != nil {
		return err
	}
	c, err := st.manifest.Character(args[0])
	if err != nil {
		return err
	}

	ns, mesh := wrapNamespace, wrapMesh
	if !cmd.Flags().Changed("namespace") {
		match, err := st.match(c.Name)
		if err != nil {
			return err
		}
		ns = st.snapshot.Namespace(match.Reference)
		if mesh == "" {
			mesh = match.MeshVersion
		}
	}
	if err := selectVersions(c, wrapCollection, mesh); err != nil {
		return err
	}

	j := pipeline.NewJournal(st.snapshot)
	res, err := pipeline.WrapHairPlates(j, c, ns)
	if err != nil {
		return err
	}
	logger.Info("hair plates wrapped", "character", c.Name, "mesh", res.Mesh, "wraps", len(res.Wraps))

	if wrapOut != "-" {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mesh: %s\n", res.Mesh)
		for _, d := range res.Deformers {
			fmt.Fprintf(out, "  [ OK ] envelope off during bind: %s\n", d)
		}
		for _, p := range c.CurrentCollection().HairPlates {
			fmt.Fprintf(out, "  [ OK ] wrap %s\n", p)
		}
	}
	return writeJournal(cmd, j, wrapOut, "wrap")
}
