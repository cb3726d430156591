package pipeline

import (
	"path/filepath"

	"github.com/chaos-io/garment2layers/config"
)

// Template identifies one garment in the catalog. Sources follow the
// "{style}-{detail}.png" naming convention inside the catalog directory.
type Template struct {
	Style  string
	Detail string

	// Threshold and KernelSize override the pipeline-wide tuning for this
	// template when non-zero.
	Threshold  uint8
	KernelSize int
}

// ID is the template identifier used in source and artifact filenames.
func (t Template) ID() string {
	return t.Style + "-" + t.Detail
}

// SourceFile returns the template's source image path under the catalog dir.
func (t Template) SourceFile(dir string) string {
	return filepath.Join(dir, t.ID()+".png")
}

// FindTemplate returns the configured catalog entry for style/detail, so
// per-template overrides apply outside full batch runs too. Unknown pairs
// get a bare template with pipeline-wide tuning.
func FindTemplate(cfg *config.Config, style, detail string) (Template, bool) {
	for _, t := range CatalogFromConfig(cfg) {
		if t.Style == style && t.Detail == detail {
			return t, true
		}
	}
	return Template{Style: style, Detail: detail}, false
}

// CatalogFromConfig materializes the ordered catalog from configuration.
func CatalogFromConfig(cfg *config.Config) []Template {
	catalog := make([]Template, 0, len(cfg.Catalog.Templates))
	for _, tc := range cfg.Catalog.Templates {
		t := Template{
			Style:      tc.Style,
			Detail:     tc.Detail,
			KernelSize: tc.KernelSize,
		}
		if tc.Threshold > 0 && tc.Threshold < 256 {
			t.Threshold = uint8(tc.Threshold)
		}
		catalog = append(catalog, t)
	}
	return catalog
}
