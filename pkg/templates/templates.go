// Package templates ships the Java template assets rendered by a
// generation run. The embedded tree is the default source; a project can
// point the template-root config key at an on-disk directory with the same
// layout to override it.
//
// Layout:
//
//	client/...    rendered under <basePackage>/client
//	domain/...    rendered under <basePackage>/domain
//	snippets/     config-file snippets, never rendered as files
package templates

import (
	"embed"
	"io/fs"
	"os"
	"strings"

	"github.com/retrokit/retrogen/pkg/errors"
)

//go:embed all:assets
var assets embed.FS

// Snippet file names under snippets/
const (
	SnippetRestClientImport = "RestClientConfig.import.java"
	SnippetRestClientBean   = "RestClientConfig.bean.java"
	SnippetEndpointsBean    = "EndpointsConfig.bean.java"
)

// Source provides access to one template tree.
type Source struct {
	root fs.FS
}

// Embedded returns the compiled-in template tree.
func Embedded() *Source {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		// The embed path is fixed at compile time
		panic(err)
	}
	return &Source{root: sub}
}

// FromDir returns a template source backed by an on-disk directory. An
// unreadable directory is fatal to the run (the template root is required
// for every generated file).
func FromDir(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRead, "template root %s is not readable", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrTemplateRead, "template root %s is not a directory", dir)
	}
	return &Source{root: os.DirFS(dir)}, nil
}

// Open selects a template source: dir when non-empty, the embedded tree
// otherwise.
func Open(dir string) (*Source, error) {
	if dir == "" {
		return Embedded(), nil
	}
	return FromDir(dir)
}

// Client returns the client template subtree.
func (s *Source) Client() (fs.FS, error) {
	return s.subtree("client")
}

// Domain returns the domain template subtree.
func (s *Source) Domain() (fs.FS, error) {
	return s.subtree("domain")
}

// Snippet returns the raw (unrendered) text of a config snippet.
func (s *Source) Snippet(name string) (string, error) {
	data, err := fs.ReadFile(s.root, "snippets/"+name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRead, "snippet %s missing from template root", name)
	}
	return string(data), nil
}

func (s *Source) subtree(name string) (fs.FS, error) {
	sub, err := fs.Sub(s.root, name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRead, "template subtree %s unreadable", name)
	}
	// fs.Sub succeeds even for missing directories; probe so a truncated
	// override tree fails up front rather than rendering nothing
	if _, err := fs.ReadDir(s.root, name); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRead, "template subtree %s unreadable", name)
	}
	return sub, nil
}

// IsTemplateFile reports whether a template tree entry should be rendered.
// Only Java sources are templates; anything else in the tree is ignored.
func IsTemplateFile(path string) bool {
	return strings.HasSuffix(path, ".java")
}
