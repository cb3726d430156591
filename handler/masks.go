// Package handler exposes the pipeline over HTTP: trigger runs, re-run a
// single template, and list or serve the mask artifacts.
package handler

import (
	"bytes"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/chaos-io/garment2layers/config"
	"github.com/chaos-io/garment2layers/layers"
	"github.com/chaos-io/garment2layers/model"
	"github.com/chaos-io/garment2layers/pipeline"
	"github.com/chaos-io/garment2layers/util"
)

type Handler struct {
	cfg      *config.Config
	log      *zap.Logger
	runner   *pipeline.Runner
	notifier *pipeline.Notifier
}

func New(cfg *config.Config, log *zap.Logger, runner *pipeline.Runner, notifier *pipeline.Notifier) *Handler {
	return &Handler{cfg: cfg, log: log, runner: runner, notifier: notifier}
}

// Register wires the routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	api := r.Group("/api")
	api.POST("/runs", h.RunBatch)
	api.POST("/templates/:style/:detail", h.RunTemplate)
	api.GET("/masks", h.ListMasks)
	api.GET("/masks/:name", h.GetMask)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunBatch executes the whole catalog and returns the report. A write
// failure is an environment problem and maps to 500 with the partial report.
func (h *Handler) RunBatch(c *gin.Context) {
	report, err := h.runner.Run(pipeline.CatalogFromConfig(h.cfg))
	if err != nil {
		h.log.Error("batch run aborted", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "batch run aborted",
			Error:   err.Error(),
		})
		return
	}
	h.notifier.Notify(c.Request.Context(), report)
	c.JSON(http.StatusOK, report)
}

// RunTemplate re-runs the pipeline for one template. Catalog entries keep
// their configured overrides; unknown templates still run with the
// pipeline-wide tuning.
func (h *Handler) RunTemplate(c *gin.Context) {
	t, _ := pipeline.FindTemplate(h.cfg, c.Param("style"), c.Param("detail"))

	if err := util.EnsureDir(h.runner.OutputDir()); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "output directory not writable",
			Error:   err.Error(),
		})
		return
	}

	result, err := h.runner.ProcessTemplate(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "failed to write mask artifacts",
			Error:   err.Error(),
		})
		return
	}
	if !result.OK {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Message: "source image missing or undecodable",
			Error:   result.Error,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMasks reports, per catalog template, which of the four canonical
// layer artifacts exist on disk.
func (h *Handler) ListMasks(c *gin.Context) {
	out := make([]model.TemplateMasks, 0, len(h.cfg.Catalog.Templates))
	for _, t := range pipeline.CatalogFromConfig(h.cfg) {
		entry := model.TemplateMasks{Template: t.ID(), Masks: map[string]string{}}
		for _, name := range layers.Names() {
			file := layers.ArtifactName(t.ID(), name)
			if _, err := os.Stat(filepath.Join(h.runner.OutputDir(), file)); err == nil {
				entry.Masks[string(name)] = file
			}
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

// GetMask serves one artifact. A "w" query parameter downscales the served
// copy to that width; the artifact on disk always keeps the source
// dimensions.
func (h *Handler) GetMask(c *gin.Context) {
	name := c.Param("name")
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".png") {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "invalid artifact name"})
		return
	}
	path := filepath.Join(h.runner.OutputDir(), name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Message: "artifact not found"})
		return
	}

	widthParam := c.Query("w")
	if widthParam == "" {
		c.File(path)
		return
	}

	width, err := strconv.Atoi(widthParam)
	if err != nil || width <= 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "invalid width"})
		return
	}

	img, err := util.OpenImage(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "failed to decode artifact",
			Error:   err.Error(),
		})
		return
	}

	thumb := resize.Resize(uint(width), 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "failed to encode thumbnail",
			Error:   err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
