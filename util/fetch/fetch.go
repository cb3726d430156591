// Command fetch downloads the catalog's source images from a remote base
// URL so a fresh checkout can run the pipeline locally:
//
//	go run ./util/fetch -base https://cdn.example.com/images/clothing -dir ./catalog
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chaos-io/garment2layers/config"
	"github.com/chaos-io/garment2layers/pipeline"
	"github.com/chaos-io/garment2layers/util"
)

func main() {
	base := flag.String("base", "", "base URL serving {style}-{detail}.png sources")
	dir := flag.String("dir", "./catalog", "local catalog directory")
	configPath := flag.String("config", "config.yaml", "config with the template list")
	flag.Parse()

	if *base == "" {
		fmt.Fprintln(os.Stderr, "missing -base URL")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", *dir, err)
		os.Exit(1)
	}

	failed := 0
	for _, t := range pipeline.CatalogFromConfig(cfg) {
		name := t.ID() + ".png"
		url := *base + "/" + name
		if err := download(url, filepath.Join(*dir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Println("fetched", name)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// download fetches one source through util.DownloadImage so a truncated or
// non-image response is rejected before anything lands on disk.
func download(url, dest string) error {
	img, err := util.DownloadImage(url)
	if err != nil {
		return err
	}

	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return png.Encode(file, img)
}
