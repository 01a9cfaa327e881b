// Package patch inserts rendered snippets into existing Java
// configuration sources. All edits are additive-only: a patch either
// appends a new entry after a documented anchor or leaves the file
// untouched. Failures are reported as warnings, never aborting a run.
package patch

import (
	"os"
	"regexp"
	"strings"

	"github.com/retrokit/retrogen/pkg/errors"
	"github.com/retrokit/retrogen/pkg/fsutil"
	"github.com/retrokit/retrogen/pkg/logging"
	"github.com/retrokit/retrogen/pkg/project"
	"github.com/retrokit/retrogen/pkg/report"
)

// Anchor describes where a snippet is inserted in a target file.
type Anchor struct {
	// Find locates existing entries of the same kind; the snippet goes
	// immediately after the LAST match
	Find *regexp.Regexp
	// Fallback locates the class closing braces when Find has no match;
	// the snippet goes after the first capture group (the inner brace)
	Fallback *regexp.Regexp
}

// Documented anchors for the two known config file shapes.
var (
	// ImportAnchor targets the import list: after the last import line.
	ImportAnchor = Anchor{
		Find: regexp.MustCompile(`(?m)^import .+;\r?$`),
	}

	// BeanAnchor targets public Spring @Bean methods: after the last bean
	// method body, falling back to just before the class closing brace.
	BeanAnchor = Anchor{
		Find:     regexp.MustCompile(`(?s)@Bean\s+public\s+\w+.*?\n\s+\}`),
		Fallback: regexp.MustCompile(`(  \}\r?\n)\}\s*$`),
	}

	// EndpointsBeanAnchor matches any @Bean method regardless of its
	// modifier; endpoint beans are often package-private.
	EndpointsBeanAnchor = Anchor{
		Find:     regexp.MustCompile(`(?s)@Bean\s+.*?\n\s+\}`),
		Fallback: regexp.MustCompile(`(  \}\r?\n)\}\s*$`),
	}
)

// insert returns content with snippet spliced at the anchor. The snippet
// is inserted on a fresh line after the anchor match, preserving every
// existing byte of content including the anchor line's terminator.
func insert(content, snippet string, a Anchor) (string, error) {
	if matches := a.Find.FindAllStringIndex(content, -1); len(matches) > 0 {
		pos := matches[len(matches)-1][1]
		cr := ""
		if strings.HasSuffix(content[:pos], "\r") {
			cr = "\r"
		}
		return content[:pos] + "\n" + snippet + cr + content[pos:], nil
	}

	if a.Fallback != nil {
		if m := a.Fallback.FindStringSubmatchIndex(content); m != nil {
			// m[3] is the end of the first capture group
			pos := m[3]
			eol := "\n"
			if strings.HasSuffix(content[:pos], "\r\n") {
				eol = "\r\n"
			}
			return content[:pos] + snippet + eol + content[pos:], nil
		}
	}

	return "", errors.New(errors.ErrAnchorNotFound, "no insertion point matched")
}

// Entry is one snippet to place into a config file.
type Entry struct {
	// Label names the entry kind in outcomes ("import", "bean")
	Label string
	// Snippet is the placeholder-rendered text to insert
	Snippet string
	// PresentMarker is the substring whose presence means the entry
	// already exists (exact import line, bean method call)
	PresentMarker string
	// Anchor selects the insertion rule
	Anchor Anchor
}

// Options describes one config file patch.
type Options struct {
	// DefaultPath is the conventional location tried first
	DefaultPath string
	// SearchRoot is walked for FileName when DefaultPath is absent
	SearchRoot string
	// FileName is the file's base name, used for fallback search and outcomes
	FileName string
	// Entries are applied in order; the file is written once at the end
	Entries []Entry
}

// Apply patches one config file. Every outcome (per entry plus discovery
// failures) lands in rep; nothing here is fatal to the run.
func Apply(opts Options, rep *report.Report) {
	logger := logging.GetLogger("patch")

	path := opts.DefaultPath
	if _, err := os.Stat(path); err != nil {
		logger.Debug().Str("path", path).Msg("Config file not at default location, searching")
		path = project.FindFile(opts.SearchRoot, opts.FileName)
		if path == "" {
			rep.Warned(opts.FileName, "not found in project")
			return
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		rep.Warned(opts.FileName, "unreadable: "+err.Error())
		return
	}
	content := string(raw)
	dirty := false

	for _, entry := range opts.Entries {
		item := opts.FileName + " (" + entry.Label + ")"

		if strings.Contains(content, entry.PresentMarker) {
			rep.Skipped(item, "already present")
			continue
		}

		patched, err := insert(content, entry.Snippet, entry.Anchor)
		if err != nil {
			rep.Warned(item, "insertion point not found")
			continue
		}

		content = patched
		dirty = true
		rep.Created(item)
	}

	if !dirty {
		return
	}

	if err := fsutil.AtomicWriteFile(path, []byte(content), 0644); err != nil {
		rep.Add(report.StatusFailed, opts.FileName, err.Error())
		return
	}
	logger.Debug().Str("path", path).Msg("Config file patched")
}
