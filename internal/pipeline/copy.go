package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/initcard/lettuce/internal/manifest"
)

// CopiedFile is one groom description file placed next to the scene.
type CopiedFile struct {
	Character string `json:"character"`
	Source    string `json:"source"`
	Dest      string `json:"dest"`
}

// CopyResult captures the outcome of CopyXGenFiles.
type CopyResult struct {
	Copied  []CopiedFile `json:"copied"`
	Skipped []string     `json:"skipped,omitempty"` // characters without an xgen file
}

// CopyXGenFiles copies each character's default collection xgen file,
// resolved against projectDir, into destDir. The copy keeps the source's
// permissions and modification time. Cancelling ctx stops the run between
// characters; the first copy failure also stops it. In both cases the files
// copied so far are returned with the error.
func CopyXGenFiles(ctx context.Context, fs afero.Fs, characters []*manifest.Character, projectDir, destDir string, progress ProgressFunc) (*CopyResult, error) {
	res := &CopyResult{}
	if err := fs.MkdirAll(destDir, 0755); err != nil {
		return res, fmt.Errorf("creating %s: %w", destDir, err)
	}

	for i, c := range characters {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		xgen := c.DefaultCollection().XGenFile
		if xgen == "" {
			res.Skipped = append(res.Skipped, c.Name)
			report(progress, i+1, len(characters), c.Name)
			continue
		}

		src := xgen
		if !filepath.IsAbs(src) {
			src = filepath.Join(projectDir, xgen)
		}
		dst := filepath.Join(destDir, filepath.Base(src))
		if err := copyFile(fs, src, dst); err != nil {
			return res, fmt.Errorf("copying %s to %s: %w", src, destDir, err)
		}
		res.Copied = append(res.Copied, CopiedFile{Character: c.Name, Source: src, Dest: dst})
		report(progress, i+1, len(characters), c.Name)
	}
	return res, nil
}

// SceneFolder returns the directory of a scene file with a trailing
// separator, or "" for an unsaved scene.
func SceneFolder(sceneFile string) string {
	if sceneFile == "" {
		return ""
	}
	return filepath.Dir(sceneFile) + string(filepath.Separator)
}

// copyFile copies a single file from src to dst, preserving permissions and
// modification time.
func copyFile(fs afero.Fs, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := fs.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	return fs.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
}
