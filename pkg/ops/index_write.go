package ops

import (
	"encoding/json"
	"os"

	"lab47.dev/vpmidx/pkg/data"
)

// IndexWrite serializes the index document, truncating any existing file at
// Path. A write failure here is fatal to the run; partial output is not
// reported as success.
type IndexWrite struct {
	common

	Path string
}

func (w *IndexWrite) Write(idx *data.Index) error {
	path := w.Path
	if path == "" {
		path = "index.json"
	}

	f, err := os.Create(path)
	if err != nil {
		return track(err)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err = enc.Encode(idx)
	if err != nil {
		return track(err)
	}

	w.L().Info("wrote index", "path", path, "packages", len(idx.Packages))

	return nil
}
