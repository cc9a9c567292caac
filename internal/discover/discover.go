// Package discover finds GDScript files to check.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// hostFS is the host filesystem with paths passed through unchanged, so
// relative paths resolve against the working directory and absolute paths
// stay absolute.
type hostFS struct {
	osfs.ChrootOS
}

func (h *hostFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (h *hostFS) Root() string {
	return "/"
}

// OS returns the host filesystem.
func OS() billy.Filesystem {
	return &hostFS{}
}

// Options filters the walk.
type Options struct {
	// Extensions are matched case-insensitively, dot included.
	Extensions []string
	// Exclude holds glob patterns matched against each entry's base name and
	// against its slash-separated path relative to the walk root.
	Exclude []string
	// Hidden includes dot-directories and dot-files.
	Hidden bool
}

// Files returns the matching files under root in lexical order. A root that
// names a file is returned as is, whatever its extension.
func Files(fsys billy.Filesystem, root string, opts Options) ([]string, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var out []string
	err = util.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if opts.skip(root, path, info) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() && opts.matchExtension(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover: walk %s: %w", root, err)
	}
	slices.Sort(out)
	return out, nil
}

func (o Options) skip(root, path string, info os.FileInfo) bool {
	name := info.Name()
	if !o.Hidden && strings.HasPrefix(name, ".") {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range o.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (o Options) matchExtension(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(o.Extensions, func(want string) bool {
		return strings.EqualFold(ext, want)
	})
}

// All walks every root in turn and merges the results, dropping duplicates
// while keeping first-seen order.
func All(fsys billy.Filesystem, roots []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, root := range roots {
		files, err := Files(fsys, root, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}
