package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/branding"
	"github.com/initcard/lettuce/internal/config"
	"github.com/initcard/lettuce/internal/scene"
	"github.com/initcard/lettuce/internal/userdata"
)

var (
	checkHome     bool
	checkConfig   bool
	checkManifest bool
	checkScene    bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&checkHome, "check-home", false, "Verify the ~/.lettuce directory")
	doctorCmd.Flags().BoolVar(&checkConfig, "check-config", false, "Verify settings and manifest version compatibility")
	doctorCmd.Flags().BoolVar(&checkManifest, "check-manifest", false, "Validate the configured manifest")
	doctorCmd.Flags().BoolVar(&checkScene, "check-scene", false, "Verify the scene snapshot and its references")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing home directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the lettuce setup",
	Long:  `Run diagnostic checks on your configuration, manifest and scene snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		all := !(checkHome || checkConfig || checkManifest || checkScene)

		if all || checkHome {
			if err := userdata.CheckHome(out, doctorFix); err != nil {
				return err
			}
		}
		if all || checkConfig {
			runConfigCheck(out)
		}
		if all || checkManifest {
			if settings.Manifest == "" {
				fmt.Fprintln(out, "Manifest validation:")
				fmt.Fprintln(out, "  [MISS] no manifest configured")
			} else if err := runManifestCheck(out, settings.Manifest); err != nil && !all {
				return err
			}
		}
		if all || checkScene {
			runSceneCheck(cmd, out)
		}
		return nil
	},
}

func runConfigCheck(w io.Writer) {
	fmt.Fprintln(w, "Config check:")
	fmt.Fprintf(w, "  [INFO] %s\n", config.FilePath())

	checkPath(w, "manifest", settings.Manifest)
	checkPath(w, "project_dir", settings.ProjectDir)
	checkPath(w, "scene_file", settings.SceneFile)

	if err := config.CheckCompatible(settings.Version, branding.ManifestVersion()); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
	} else {
		fmt.Fprintf(w, "  [ OK ] manifest version %s (supported %s)\n", settings.Version, branding.ManifestVersion())
	}
}

func checkPath(w io.Writer, key, path string) {
	if path == "" {
		fmt.Fprintf(w, "  [MISS] %s not set (run '%s config set %s <path>')\n", key, branding.CLIName(), key)
		return
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", key, err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s = %s\n", key, path)
}

func runSceneCheck(cmd *cobra.Command, w io.Writer) {
	fmt.Fprintln(w, "Scene check:")
	snap, err := loadSnapshot()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] scene %s\n", dash(snap.Scene))

	for _, ref := range snap.Refs {
		if _, err := snap.ReferenceFile(cmd.Context(), ref.ID); err != nil {
			fmt.Fprintf(w, "  [WARN] reference %s: %v\n", ref.ID, err)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] reference %s -> %s\n", ref.ID, ref.File)
	}

	if settings.Manifest == "" {
		return
	}
	st, err := resolveScene(cmd.Context())
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] resolving characters: %v\n", err)
		return
	}
	n := len(scene.Unique(st.result.Characters))
	if n == 0 {
		fmt.Fprintln(w, "  [WARN] no manifest characters referenced in scene")
		return
	}
	fmt.Fprintf(w, "  [ OK ] %d manifest character(s) referenced in scene\n", n)
}
