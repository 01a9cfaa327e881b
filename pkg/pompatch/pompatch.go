// Package pompatch ensures the Maven dependencies required by the
// generated client are declared in the target project's pom.xml.
//
// Like every other patcher, edits are additive-only: dependencies already
// declared (any version) are left alone, and the file is rewritten only
// when something was added. Re-serialization normalizes indentation to the
// document's detected indent width.
package pompatch

import (
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/retrokit/retrogen/pkg/fsutil"
	"github.com/retrokit/retrogen/pkg/logging"
	"github.com/retrokit/retrogen/pkg/project"
	"github.com/retrokit/retrogen/pkg/report"
)

// Dependency identifies one Maven artifact.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// ClientDependencies is the fixed set the generated Retrofit client
// compiles against.
var ClientDependencies = []Dependency{
	{GroupID: "com.squareup.retrofit2", ArtifactID: "retrofit", Version: "2.9.0"},
	{GroupID: "com.squareup.retrofit2", ArtifactID: "converter-jackson", Version: "2.9.0"},
	{GroupID: "org.mapstruct", ArtifactID: "mapstruct", Version: "1.5.5.Final"},
}

// Options describes one pom patch run.
type Options struct {
	// DefaultPath is the conventional pom location (project root)
	DefaultPath string
	// SearchRoot is walked for FileName when DefaultPath is absent
	SearchRoot string
	// FileName is the pom's base name
	FileName string
	// Dependencies to ensure; defaults to ClientDependencies when empty
	Dependencies []Dependency
}

// Apply ensures the dependencies are declared. Outcomes land in rep;
// a missing or malformed pom is a warning, never fatal.
func Apply(opts Options, rep *report.Report) {
	logger := logging.GetLogger("pompatch")

	deps := opts.Dependencies
	if len(deps) == 0 {
		deps = ClientDependencies
	}

	path := opts.DefaultPath
	if _, err := os.Stat(path); err != nil {
		logger.Debug().Str("path", path).Msg("pom not at default location, searching")
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

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		rep.Warned(opts.FileName, "not valid XML: "+err.Error())
		return
	}

	root := doc.Root()
	if root == nil || root.Tag != "project" {
		rep.Warned(opts.FileName, "no <project> root element")
		return
	}

	section := root.SelectElement("dependencies")
	if section == nil {
		rep.Warned(opts.FileName, "no <dependencies> section")
		return
	}

	declared := make(map[string]bool)
	for _, dep := range section.SelectElements("dependency") {
		declared[coordinate(childText(dep, "groupId"), childText(dep, "artifactId"))] = true
	}

	dirty := false
	for _, dep := range deps {
		item := opts.FileName + " (" + dep.GroupID + ":" + dep.ArtifactID + ")"
		if declared[coordinate(dep.GroupID, dep.ArtifactID)] {
			rep.Skipped(item, "already present")
			continue
		}

		el := section.CreateElement("dependency")
		el.CreateElement("groupId").SetText(dep.GroupID)
		el.CreateElement("artifactId").SetText(dep.ArtifactID)
		if dep.Version != "" {
			el.CreateElement("version").SetText(dep.Version)
		}
		rep.Created(item)
		dirty = true
	}

	if !dirty {
		return
	}

	doc.Indent(detectIndent(string(raw)))
	out, err := doc.WriteToBytes()
	if err != nil {
		rep.Add(report.StatusFailed, opts.FileName, err.Error())
		return
	}
	if err := fsutil.AtomicWriteFile(path, out, 0644); err != nil {
		rep.Add(report.StatusFailed, opts.FileName, err.Error())
		return
	}
	logger.Debug().Str("path", path).Msg("pom patched")
}

func coordinate(groupID, artifactID string) string {
	return groupID + ":" + artifactID
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// detectIndent returns the indent width of the first indented element
// line, defaulting to the conventional 4 spaces of Maven poms.
func detectIndent(content string) int {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed != line && strings.HasPrefix(trimmed, "<") {
			return len(line) - len(trimmed)
		}
	}
	return 4
}
