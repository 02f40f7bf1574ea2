// Package adapter contains infrastructure adapters for the casecov CLI:
// case file discovery and parsing, report storage and configuration.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

// CaseFileSuffix marks the files that declare members and their cases.
const CaseFileSuffix = ".cases.yaml"

// SourceFSAdapter abstracts the filesystem operations used to locate and
// read case files, so extraction can be tested without touching the disk.
type SourceFSAdapter interface {
	// Find resolves files, directories and `dir/...` patterns to the case
	// files they contain, skipping paths matching any exclude regex.
	Find(roots []m.Path, exclude []string) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter reads case files from the local filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Find collects case files under the provided roots, sorted and deduplicated.
func (a *LocalSourceFSAdapter) Find(roots []m.Path, exclude []string) ([]m.Path, error) {
	if len(roots) == 0 {
		roots = []m.Path{"./..."}
	}

	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var files []m.Path

	add := func(path string) {
		if !isCaseFile(path) || excluded(patterns, path) {
			return
		}

		if _, exists := seen[path]; exists {
			return
		}

		seen[path] = struct{}{}
		files = append(files, m.Path(path))
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath)
			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			base := filepath.Base(path)
			if !recursive || base == ".git" || base == "vendor" || base == "node_modules" {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path comes from the user's own case file selection
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func isCaseFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), CaseFileSuffix)
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func excluded(patterns []*regexp.Regexp, path string) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range patterns {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
