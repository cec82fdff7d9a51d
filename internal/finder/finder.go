// Package finder resolves an input path to the list of PHP source files
// to process.
package finder

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are never descended into, independent of configuration.
var skipDirs = map[string]bool{
	".git": true,
	".svn": true,
	".hg":  true,
}

// Find resolves input (a file or a directory) to an absolute, sorted list
// of .php files. Directories are walked recursively; directory names in
// skipDirs and any path containing one of the exclude substrings are
// skipped.
func Find(input string, exclude []string, logger *slog.Logger) ([]string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	if !info.IsDir() {
		if !isPHPFile(abs) {
			return nil, fmt.Errorf("%s is not a PHP file", abs)
		}
		return []string{abs}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || excluded(path+string(filepath.Separator), exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPHPFile(path) || excluded(path, exclude) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", abs, err)
	}

	sort.Strings(files)
	logger.Info("resolved source files", "input", input, "files_count", len(files))
	return files, nil
}

func isPHPFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".php")
}

func excluded(path string, exclude []string) bool {
	// Patterns are matched against the slash-separated path so configs
	// written with "/" work on every platform.
	slashed := filepath.ToSlash(path)
	for _, pat := range exclude {
		if pat != "" && strings.Contains(slashed, pat) {
			return true
		}
	}
	return false
}
