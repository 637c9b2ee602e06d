package subsample

import (
	"fmt"
	"path/filepath"

	"github.com/imgprep/subsample/internal/dataset"
	"github.com/imgprep/subsample/internal/manifest"
	"github.com/imgprep/subsample/internal/sampler"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Options configures a single run.
type Options struct {
	Layout        dataset.Layout
	Fraction      float64
	Seed          int64
	DryRun        bool // compute the selection without touching the destination
	WriteManifest bool
	Logger        *zap.Logger
}

// ClassResult is the selection made for one class.
type ClassResult struct {
	Name     string   `json:"name"`
	Total    int      `json:"total"`
	Selected []string `json:"selected"`
}

// Result summarizes a run.
type Result struct {
	Source       string        `json:"source"`
	Dest         string        `json:"dest"`
	Fraction     float64       `json:"fraction"`
	Seed         int64         `json:"seed"`
	DryRun       bool          `json:"dry_run"`
	Classes      []ClassResult `json:"classes"`
	Files        int           `json:"files"`
	Bytes        int64         `json:"bytes"`
	ManifestPath string        `json:"manifest_path,omitempty"`
}

// Run performs one subsample pass. The first error aborts the run and leaves
// the destination as it was at that moment; the next run clears it.
func Run(fs afero.Fs, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	layout := opts.Layout

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if err := sampler.ValidateFraction(opts.Fraction); err != nil {
		return nil, err
	}

	sourceDir := layout.SourcePath()
	destDir := layout.DestPath()

	classes, err := dataset.ListClasses(fs, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	log.Debug("classes found", zap.String("source", sourceDir), zap.Int("count", len(classes)))

	if !opts.DryRun {
		// A stale manifest would describe a tree that no longer exists.
		if err := manifest.Remove(fs, layout.ManifestPath()); err != nil {
			return nil, err
		}
		if err := dataset.ResetDir(fs, destDir); err != nil {
			return nil, fmt.Errorf("preparing destination: %w", err)
		}
		log.Debug("destination reset", zap.String("dest", destDir))
	}

	smp := sampler.New(opts.Seed)
	res := &Result{
		Source:   sourceDir,
		Dest:     destDir,
		Fraction: opts.Fraction,
		Seed:     smp.Seed(),
		DryRun:   opts.DryRun,
		Classes:  make([]ClassResult, 0, len(classes)),
	}

	for _, class := range classes {
		cr, n, err := runClass(fs, layout, class, smp, opts, log)
		if err != nil {
			return nil, err
		}
		res.Classes = append(res.Classes, cr)
		res.Files += len(cr.Selected)
		res.Bytes += n
	}

	if opts.WriteManifest && !opts.DryRun {
		m := manifest.New(layout.Source, layout.Dest, res.Fraction, res.Seed)
		for _, cr := range res.Classes {
			m.Classes = append(m.Classes, manifest.Class{
				Name:     cr.Name,
				Total:    cr.Total,
				Selected: cr.Selected,
			})
		}
		m.Files = res.Files
		m.Bytes = res.Bytes
		if err := manifest.Write(fs, layout.ManifestPath(), m); err != nil {
			return nil, err
		}
		res.ManifestPath = layout.ManifestPath()
		log.Debug("manifest written", zap.String("path", res.ManifestPath), zap.String("run_id", m.RunID))
	}

	return res, nil
}

// runClass samples and copies one class. It returns the bytes copied.
func runClass(fs afero.Fs, layout dataset.Layout, class string, smp *sampler.Sampler, opts Options, log *zap.Logger) (ClassResult, int64, error) {
	srcDir := layout.SourceClassPath(class)
	dstDir := layout.DestClassPath(class)

	if !opts.DryRun {
		if err := dataset.EnsureDir(fs, dstDir); err != nil {
			return ClassResult{}, 0, err
		}
	}

	files, err := dataset.ListFiles(fs, srcDir)
	if err != nil {
		return ClassResult{}, 0, fmt.Errorf("listing class %s: %w", class, err)
	}

	k := sampler.Count(len(files), opts.Fraction)
	selected, err := smp.Draw(files, k)
	if err != nil {
		return ClassResult{}, 0, fmt.Errorf("sampling class %s: %w", class, err)
	}
	log.Debug("class sampled",
		zap.String("class", class),
		zap.Int("total", len(files)),
		zap.Int("selected", len(selected)),
	)

	var copied int64
	if opts.DryRun {
		for _, name := range selected {
			src := filepath.Join(srcDir, name)
			info, err := fs.Stat(src)
			if err != nil {
				return ClassResult{}, copied, fmt.Errorf("inspecting %s: %w", src, err)
			}
			if info.IsDir() {
				return ClassResult{}, copied, fmt.Errorf("copying %s: %w", src, dataset.ErrIsDirectory)
			}
			copied += info.Size()
		}
	} else {
		for _, name := range selected {
			n, err := dataset.CopyFile(fs, filepath.Join(srcDir, name), filepath.Join(dstDir, name))
			if err != nil {
				return ClassResult{}, copied, err
			}
			copied += n
			log.Debug("file copied", zap.String("class", class), zap.String("file", name), zap.Int64("bytes", n))
		}
	}

	return ClassResult{Name: class, Total: len(files), Selected: selected}, copied, nil
}
