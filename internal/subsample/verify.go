package subsample

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/imgprep/subsample/internal/dataset"
	"github.com/imgprep/subsample/internal/manifest"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Problem kinds reported by Verify.
const (
	ProblemSchema     = "schema"
	ProblemManifest   = "manifest"
	ProblemLayout     = "layout"
	ProblemMissing    = "missing"
	ProblemUnexpected = "unexpected"
	ProblemSize       = "size"
	ProblemSource     = "source"
)

// Problem is one discrepancy between a manifest and the files on disk.
type Problem struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Kind, p.Path, p.Message)
}

// Report is the outcome of Verify.
type Report struct {
	Manifest *manifest.Manifest `json:"manifest,omitempty"`
	Problems []Problem          `json:"problems"`
}

// OK reports whether no problems were found.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) add(kind, path, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Verify compares the destination tree of layout with the manifest written by
// the run that produced it. Errors are returned only when the manifest cannot
// be read or was written by an incompatible format version; everything else
// is reported as a Problem.
func Verify(fs afero.Fs, layout dataset.Layout, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	path := layout.ManifestPath()
	report := &Report{Problems: []Problem{}}

	result, err := manifest.ValidateFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			report.add(ProblemSchema, path+"#"+issue.Path, "%s", issue.Message)
		}
		return report, nil
	}

	m, err := manifest.Load(fs, path)
	if err != nil {
		return nil, err
	}
	if err := manifest.CheckCompatible(m.FormatVersion); err != nil {
		return nil, err
	}
	report.Manifest = m
	log.Debug("manifest loaded", zap.String("path", path), zap.String("run_id", m.RunID), zap.Int("classes", len(m.Classes)))

	for _, issue := range m.Check() {
		report.add(ProblemManifest, path+"#"+issue.Path, "%s", issue.Message)
	}
	if m.Source != layout.Source || m.Dest != layout.Dest {
		report.add(ProblemLayout, path, "manifest describes %s -> %s, verifying %s -> %s",
			m.Source, m.Dest, layout.Source, layout.Dest)
	}

	destDir := layout.DestPath()
	onDisk, err := dataset.ListFiles(fs, destDir)
	if err != nil {
		report.add(ProblemMissing, destDir, "destination not readable: %v", err)
		return report, nil
	}

	for _, c := range m.Classes {
		verifyClass(fs, layout, c, report)
	}
	for _, name := range onDisk {
		if _, ok := m.ClassByName(name); !ok {
			report.add(ProblemUnexpected, filepath.Join(destDir, name), "not recorded in manifest")
		}
	}

	log.Debug("verify finished", zap.Int("problems", len(report.Problems)))
	return report, nil
}

func verifyClass(fs afero.Fs, layout dataset.Layout, c manifest.Class, report *Report) {
	dstDir := layout.DestClassPath(c.Name)
	srcDir := layout.SourceClassPath(c.Name)

	present, err := dataset.ListFiles(fs, dstDir)
	if err != nil {
		report.add(ProblemMissing, dstDir, "class directory missing")
		return
	}

	selected := make(map[string]bool, len(c.Selected))
	for _, name := range c.Selected {
		selected[name] = true
	}
	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
		if !selected[name] {
			report.add(ProblemUnexpected, filepath.Join(dstDir, name), "not selected for class %s", c.Name)
		}
	}

	names := append([]string(nil), c.Selected...)
	sort.Strings(names)
	for _, name := range names {
		dst := filepath.Join(dstDir, name)
		if !have[name] {
			report.add(ProblemMissing, dst, "selected file not present")
			continue
		}

		dstInfo, err := fs.Stat(dst)
		if err != nil {
			report.add(ProblemMissing, dst, "stat failed: %v", err)
			continue
		}
		srcInfo, err := fs.Stat(filepath.Join(srcDir, name))
		if err != nil {
			report.add(ProblemSource, filepath.Join(srcDir, name), "source file no longer readable: %v", err)
			continue
		}
		if srcInfo.Size() != dstInfo.Size() {
			report.add(ProblemSize, dst, "size %d differs from source size %d", dstInfo.Size(), srcInfo.Size())
		}
	}
}
