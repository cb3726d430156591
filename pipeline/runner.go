// Package pipeline drives the batch: for every catalog template it loads
// the source image, segments the garment, decomposes the mask into layers
// and writes the accepted layer artifacts.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/chaos-io/garment2layers/config"
	"github.com/chaos-io/garment2layers/garment"
	"github.com/chaos-io/garment2layers/layers"
	"github.com/chaos-io/garment2layers/model"
	"github.com/chaos-io/garment2layers/util"
)

// ErrLoad marks a template whose source image is missing or undecodable.
// It aborts only that template, never the batch.
var ErrLoad = errors.New("failed to load source image")

// Skip reasons recorded in layer outcomes.
const (
	ReasonEmpty        = "empty"
	ReasonBelowDensity = "below_density"
)

// producedLayers is the decomposer output order; shoes is intentionally
// absent because no band produces it.
var producedLayers = []layers.Name{layers.TopLayer, layers.BaseLayer, layers.Bottom}

type Runner struct {
	cfg *config.Config
	log *zap.Logger
}

func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// OutputDir is the artifact directory under the catalog dir.
func (r *Runner) OutputDir() string {
	return filepath.Join(r.cfg.Catalog.Dir, r.cfg.Catalog.MasksSubdir)
}

func (r *Runner) bands() layers.Bands {
	return layers.Bands{
		Top:    layers.Band{From: 0, To: r.cfg.Bands.TopBottomSplit},
		Collar: layers.Band{From: r.cfg.Bands.CollarFrom, To: r.cfg.Bands.CollarTo},
		Lower:  layers.Band{From: r.cfg.Bands.TopBottomSplit, To: 1},
	}
}

// Run processes the catalog in order. Per-template load failures are
// counted and skipped; a write failure aborts the run because it means the
// environment is misconfigured, and the partial report is returned with the
// error. The output directory is created exactly once, up front.
func (r *Runner) Run(catalog []Template) (*model.BatchReport, error) {
	report := &model.BatchReport{
		RunID:     ksuid.New().String(),
		StartedAt: time.Now(),
	}

	if err := util.EnsureDir(r.OutputDir()); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	r.log.Info("starting batch run",
		zap.String("run_id", report.RunID),
		zap.Int("templates", len(catalog)),
		zap.String("output_dir", r.OutputDir()))

	for _, t := range catalog {
		result, err := r.ProcessTemplate(t)
		report.Results = append(report.Results, result)
		report.Processed++
		if result.OK {
			report.Succeeded++
		} else {
			report.Failed++
		}
		if err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}
	}

	report.Duration = time.Since(report.StartedAt)
	r.log.Info("batch run finished",
		zap.String("run_id", report.RunID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// ProcessTemplate runs the whole pipeline for one template. The returned
// error is non-nil only for artifact write failures; load and decode
// problems are recorded in the result and the batch moves on.
func (r *Runner) ProcessTemplate(t Template) (model.TemplateResult, error) {
	result := model.TemplateResult{Template: t.ID()}
	defer util.Trace("process " + t.ID())()

	img, err := util.OpenImage(t.SourceFile(r.cfg.Catalog.Dir))
	if err != nil {
		loadErr := fmt.Errorf("%w: %s: %v", ErrLoad, t.ID(), err)
		r.log.Warn("skipping template", zap.String("template", t.ID()), zap.Error(loadErr))
		result.Error = loadErr.Error()
		return result, nil
	}

	cutoff := r.cutoffFor(t, img)
	kernel := t.KernelSize
	if kernel == 0 {
		kernel = r.cfg.Cleaner.KernelSize
	}

	mask := garment.Segment(img, cutoff, kernel)
	result.OK = true

	set := layers.Decompose(mask, r.bands())
	for _, name := range producedLayers {
		sub := set[name]
		outcome := model.LayerOutcome{
			Layer:  string(name),
			Pixels: garment.CountForeground(sub),
		}

		if !layers.Significant(name, sub, r.cfg.Filter.BaseLayerMinDensity) {
			outcome.Reason = ReasonBelowDensity
			if outcome.Pixels == 0 {
				outcome.Reason = ReasonEmpty
			}
			r.log.Debug("skipping layer",
				zap.String("template", t.ID()),
				zap.String("layer", string(name)),
				zap.String("reason", outcome.Reason))
			result.Layers = append(result.Layers, outcome)
			continue
		}

		file := layers.ArtifactName(t.ID(), name)
		if err := layers.Write(filepath.Join(r.OutputDir(), file), sub); err != nil {
			result.Layers = append(result.Layers, outcome)
			return result, fmt.Errorf("template %s layer %s: %w", t.ID(), name, err)
		}
		outcome.Written = true
		outcome.File = file
		result.Layers = append(result.Layers, outcome)

		r.log.Info("wrote layer mask",
			zap.String("template", t.ID()),
			zap.String("layer", string(name)),
			zap.Int("pixels", outcome.Pixels),
			zap.String("file", file))
	}

	return result, nil
}

// cutoffFor resolves the luminance cutoff for one template: explicit
// per-template override first, then the backdrop estimate when adaptive
// mode is on, then the pipeline-wide constant.
func (r *Runner) cutoffFor(t Template, img image.Image) uint8 {
	if t.Threshold > 0 {
		return t.Threshold
	}
	if r.cfg.Segmenter.Adaptive {
		return garment.BackdropCutoff(img, uint8(r.cfg.Segmenter.AdaptiveMargin))
	}
	return uint8(r.cfg.Segmenter.Threshold)
}
