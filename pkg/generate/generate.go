// Package generate sequences one scaffolding run: locate the target
// package, render the template trees, patch the config files, and collect
// every per-file outcome into a single report.
//
// Only parameter validation, project location and an unreadable template
// root are fatal. Everything downstream is additive and idempotent, so a
// partially completed run is finished by simply running again.
package generate

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/retrokit/retrogen/pkg/config"
	"github.com/retrokit/retrogen/pkg/logging"
	"github.com/retrokit/retrogen/pkg/patch"
	"github.com/retrokit/retrogen/pkg/placeholder"
	"github.com/retrokit/retrogen/pkg/pompatch"
	"github.com/retrokit/retrogen/pkg/project"
	"github.com/retrokit/retrogen/pkg/render"
	"github.com/retrokit/retrogen/pkg/report"
	"github.com/retrokit/retrogen/pkg/templates"
	"github.com/retrokit/retrogen/pkg/yamlpatch"
)

// Patched file names.
const (
	RestClientConfigFile = "RestClientConfig.java"
	EndpointsConfigFile  = "EndpointsConfig.java"
)

// Options configures one generation run.
type Options struct {
	Params Params
	// ProjectRoot is the Java project to scaffold into
	ProjectRoot string
	// Config resolves to config.Load(ProjectRoot) when nil
	Config *config.Config
}

// Result carries the outcome of a completed run.
type Result struct {
	Report *report.Report
	// BasePackage is the detected dotted namespace
	BasePackage string
	// ServiceIdentifier is the resolved YAML identifier
	ServiceIdentifier string
}

// Run executes a generation run.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("generate")

	params := opts.Params
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params.Derive()

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(opts.ProjectRoot)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	source, err := templates.Open(cfg.TemplateRoot)
	if err != nil {
		return nil, err
	}

	loc, err := project.Locate(opts.ProjectRoot, cfg.SourceRoot, cfg.MarkerDir)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("apiName", params.APIName).
		Str("basePackage", loc.BasePackage).
		Str("serviceIdentifier", params.ServiceIdentifier).
		Msg("Starting generation")

	tokens := placeholder.NewMap(
		params.APIName, loc.BasePackage, params.EndpointPath, params.BaseURL, params.ServiceIdentifier)
	camel := placeholder.LowerFirst(params.APIName)

	rep := &report.Report{}

	if err := renderTrees(source, loc, cfg, tokens, rep); err != nil {
		return nil, err
	}
	if err := patchJavaConfigs(source, loc, opts.ProjectRoot, tokens, camel, rep); err != nil {
		return nil, err
	}

	yamlpatch.Apply(yamlpatch.Options{
		DefaultPath: filepath.Join(opts.ProjectRoot, filepath.FromSlash(cfg.ResourcesRoot), cfg.YamlFile),
		SearchRoot:  opts.ProjectRoot,
		FileName:    cfg.YamlFile,
		ServiceID:   params.ServiceIdentifier,
		BaseURL:     params.BaseURL,
		Credentials: params.Credentials,
	}, rep)

	if cfg.PatchPom {
		pompatch.Apply(pompatch.Options{
			DefaultPath: filepath.Join(opts.ProjectRoot, cfg.PomFile),
			SearchRoot:  opts.ProjectRoot,
			FileName:    cfg.PomFile,
		}, rep)
	}

	logger.Info().
		Int("created", rep.Count(report.StatusCreated)).
		Int("skipped", rep.Count(report.StatusSkipped)).
		Int("warned", rep.Count(report.StatusWarned)).
		Msg("Generation finished")

	return &Result{
		Report:            rep,
		BasePackage:       loc.BasePackage,
		ServiceIdentifier: params.ServiceIdentifier,
	}, nil
}

func renderTrees(source *templates.Source, loc *project.Location, cfg *config.Config, tokens placeholder.Map, rep *report.Report) error {
	for _, tree := range []struct {
		name string
		open func() (fs.FS, error)
	}{
		{"client", source.Client},
		{"domain", source.Domain},
	} {
		fsys, err := tree.open()
		if err != nil {
			return err
		}
		r := &render.Renderer{
			Templates:    fsys,
			OutDir:       filepath.Join(loc.PackageDir, tree.name),
			Map:          tokens,
			Strict:       cfg.StrictPlaceholders,
			ReportPrefix: path.Join(cfg.SourceRoot, loc.PackagePath, tree.name),
		}
		if err := r.Render(rep); err != nil {
			return err
		}
	}
	return nil
}

func patchJavaConfigs(source *templates.Source, loc *project.Location, projectRoot string, tokens placeholder.Map, camel string, rep *report.Report) error {
	importSnippet, err := source.Snippet(templates.SnippetRestClientImport)
	if err != nil {
		return err
	}
	restBeanSnippet, err := source.Snippet(templates.SnippetRestClientBean)
	if err != nil {
		return err
	}
	endpointsBeanSnippet, err := source.Snippet(templates.SnippetEndpointsBean)
	if err != nil {
		return err
	}

	importLine := strings.TrimSpace(tokens.Apply(importSnippet))

	patch.Apply(patch.Options{
		DefaultPath: filepath.Join(loc.PackageDir, "config", RestClientConfigFile),
		SearchRoot:  projectRoot,
		FileName:    RestClientConfigFile,
		Entries: []patch.Entry{
			{
				Label:         "import",
				Snippet:       importLine,
				PresentMarker: importLine,
				Anchor:        patch.ImportAnchor,
			},
			{
				Label:         "bean",
				Snippet:       tokens.Apply(restBeanSnippet),
				PresentMarker: camel + "Api(",
				Anchor:        patch.BeanAnchor,
			},
		},
	}, rep)

	patch.Apply(patch.Options{
		DefaultPath: filepath.Join(loc.PackageDir, "config", "endpoints", EndpointsConfigFile),
		SearchRoot:  projectRoot,
		FileName:    EndpointsConfigFile,
		Entries: []patch.Entry{
			{
				Label:         "bean",
				Snippet:       tokens.Apply(endpointsBeanSnippet),
				PresentMarker: camel + "Endpoint(",
				Anchor:        patch.EndpointsBeanAnchor,
			},
		},
	}, rep)

	return nil
}
