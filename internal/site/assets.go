package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CopyAssets copies every regular file under srcRoot matching one of
// patterns into dstRoot, keeping relative paths. It returns the number of
// files copied.
func CopyAssets(srcRoot, dstRoot string, patterns []string) (int, error) {
	if _, err := os.Stat(srcRoot); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	fsys := os.DirFS(srcRoot)
	dstAbs, _ := filepath.Abs(dstRoot)

	seen := make(map[string]bool)
	n := 0
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
		if err != nil {
			return n, fmt.Errorf("matching asset pattern %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			src := filepath.Join(srcRoot, filepath.FromSlash(rel))
			if abs, _ := filepath.Abs(src); dstAbs != "" && isWithin(dstAbs, abs) {
				continue
			}
			info, err := os.Stat(src)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if err := copyFile(src, filepath.Join(dstRoot, filepath.FromSlash(rel))); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func isWithin(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
