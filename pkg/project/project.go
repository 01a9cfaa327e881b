// Package project discovers the target project's base package by locating
// the conventional client marker directory under the Java source root.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/retrokit/retrogen/pkg/errors"
	"github.com/retrokit/retrogen/pkg/logging"
)

// Location describes the detected insertion point for generated sources.
type Location struct {
	// SourceDir is the absolute path of the Java source root (src/main/java)
	SourceDir string
	// PackageDir is the absolute path of the package containing the marker directory
	PackageDir string
	// BasePackage is PackageDir relative to SourceDir with dots (com.example.app)
	BasePackage string
	// PackagePath is BasePackage with slashes (com/example/app)
	PackagePath string
}

// Locate walks root/sourceRoot looking for directories that contain a child
// directory named marker. The parent of the shallowest match becomes the
// base package; ties at the same depth are broken lexicographically by
// relative path. Returns ErrMarkerNotFound when no marker exists, which is
// fatal to a generation run.
func Locate(root, sourceRoot, marker string) (*Location, error) {
	logger := logging.GetLogger("project")

	sourceDir := filepath.Join(root, filepath.FromSlash(sourceRoot))
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceRoot, "could not find %s in %s", sourceRoot, root)
	}

	var candidates []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees do not abort discovery
			logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			return fs.SkipDir
		}
		if d.IsDir() && d.Name() == marker && path != sourceDir {
			rel, relErr := filepath.Rel(sourceDir, filepath.Dir(path))
			if relErr != nil {
				return relErr
			}
			candidates = append(candidates, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "source tree walk failed")
	}

	if len(candidates) == 0 {
		return nil, errors.Newf(errors.ErrMarkerNotFound,
			"could not find a package containing a %q directory under %s", marker, sourceRoot)
	}

	// Shallowest first, then lexicographic: deterministic regardless of
	// filesystem iteration order.
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := pathDepth(candidates[i]), pathDepth(candidates[j])
		if di != dj {
			return di < dj
		}
		return candidates[i] < candidates[j]
	})

	chosen := candidates[0]
	if len(candidates) > 1 {
		logger.Warn().
			Strs("candidates", candidates).
			Str("chosen", chosen).
			Msg("Multiple marker directories found, using shallowest")
	}

	basePackage := strings.ReplaceAll(chosen, "/", ".")
	loc := &Location{
		SourceDir:   sourceDir,
		PackageDir:  filepath.Join(sourceDir, filepath.FromSlash(chosen)),
		BasePackage: basePackage,
		PackagePath: chosen,
	}

	logger.Debug().Str("basePackage", basePackage).Msg("Detected base package")
	return loc, nil
}

// FindFile recursively searches root for a file with the given name and
// returns its absolute path, or "" when absent. The walk is lexicographic,
// so the first hit is deterministic.
func FindFile(root, name string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

func pathDepth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}
