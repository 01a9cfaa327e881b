// Package render writes template trees into the target project, applying
// placeholder substitution to both file paths and file contents.
package render

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/retrokit/retrogen/pkg/errors"
	"github.com/retrokit/retrogen/pkg/logging"
	"github.com/retrokit/retrogen/pkg/placeholder"
	"github.com/retrokit/retrogen/pkg/report"
	"github.com/retrokit/retrogen/pkg/templates"
)

// Renderer renders one template subtree to one destination directory.
type Renderer struct {
	// Templates is the template subtree to walk
	Templates fs.FS
	// OutDir is the absolute destination directory the tree is mirrored into
	OutDir string
	// Map holds the placeholder substitutions for this run
	Map placeholder.Map
	// Strict warns on (and withholds) output that still contains
	// placeholder-shaped tokens after substitution
	Strict bool
	// ReportPrefix is prepended to item paths in outcomes so the summary
	// shows project-relative locations
	ReportPrefix string
}

// Render walks the template tree and renders every template file.
// Per-file outcomes land in rep; only a broken template tree returns an
// error, since that means every remaining file would fail the same way.
func (r *Renderer) Render(rep *report.Report) error {
	logger := logging.GetLogger("render")

	return fs.WalkDir(r.Templates, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrTemplateRead, "template tree walk failed at %s", p)
		}
		if d.IsDir() || !templates.IsTemplateFile(p) {
			return nil
		}

		raw, err := fs.ReadFile(r.Templates, p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrTemplateRead, "could not read template %s", p)
		}

		relOut := r.Map.Apply(p)
		item := path.Join(r.ReportPrefix, relOut)
		dest := filepath.Join(r.OutDir, filepath.FromSlash(relOut))

		if _, err := os.Stat(dest); err == nil {
			logger.Debug().Str("dest", dest).Msg("Destination exists, skipping")
			rep.Skipped(item, "already exists")
			return nil
		}

		content := r.Map.Apply(string(raw))

		if r.Strict {
			residues := placeholder.Unexpanded(content)
			residues = append(residues, placeholder.Unexpanded(relOut)...)
			if len(residues) > 0 {
				rep.Warned(item, "unexpanded placeholders: "+strings.Join(residues, ", "))
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			rep.Add(report.StatusFailed, item, err.Error())
			return nil
		}
		if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
			rep.Add(report.StatusFailed, item, err.Error())
			return nil
		}

		logger.Debug().Str("dest", dest).Msg("Rendered template")
		rep.Created(item)
		return nil
	})
}
