package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Default content for config.yaml.
const defaultConfigContent = `# manifest: /path/to/characters.xml
# project_dir: /path/to/project
# scene_file: /path/to/scene.snapshot.yaml
log_level: info
cache_size: 256
`

// Init creates the home directory layout. It prints progress messages to w.
// Existing items are skipped with a message.
func Init(w io.Writer) error {
	root, err := Root()
	if err != nil {
		return err
	}
	if err := ensureDir(w, root, DirPermNormal); err != nil {
		return err
	}
	for _, dir := range []string{LogsDir, JournalsDir} {
		if err := ensureDir(w, filepath.Join(root, dir), DirPermNormal); err != nil {
			return err
		}
	}
	return ensureFile(w, filepath.Join(root, ConfigFile), defaultConfigContent, FilePermNormal)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll is subject to umask.
	if err := chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// chmod is a no-op on Windows, which has no Unix permission bits.
func chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
