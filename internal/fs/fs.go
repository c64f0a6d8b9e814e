package fs

import (
	"archive/zip"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directories that never hold submissions.
var skipDirs = map[string]bool{
	"__MACOSX":           true,
	".ipynb_checkpoints": true,
}

// ExtractZip unpacks archive into dest and returns dest. Entries that would
// land outside dest are rejected.
func ExtractZip(archive, dest string) (string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %s: %w", archive, err)
	}
	defer r.Close()

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("invalid extraction directory %s: %w", dest, err)
	}
	if err := os.MkdirAll(absDest, 0755); err != nil {
		return "", fmt.Errorf("could not create extraction directory: %w", err)
	}

	for _, f := range r.File {
		target := filepath.Join(absDest, f.Name)
		if target != absDest && !strings.HasPrefix(target, absDest+string(os.PathSeparator)) {
			return "", fmt.Errorf("archive entry %q escapes extraction directory", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
	}
	return absDest, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// ListFiles walks root and returns the files accepted by keep, sorted.
// Hidden directories and archive metadata folders are skipped.
func ListFiles(root string, keep func(path string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if keep(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "/" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %s: %w", dir, err)
	}
	return nil
}
