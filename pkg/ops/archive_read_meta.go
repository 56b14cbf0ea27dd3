package ops

import (
	"archive/zip"
	"encoding/json"
	"strings"

	"lab47.dev/vpmidx/pkg/data"
)

const MetadataName = "package.json"

// ArchiveReadMeta pulls the package.json out of a plugin archive. The entry
// must sit at the archive root; a package.json inside a subfolder does not
// count.
type ArchiveReadMeta struct {
	common
}

func (a *ArchiveReadMeta) Read(path string) (*data.PackageMeta, error) {
	z, err := zip.OpenReader(path)
	if err != nil {
		a.L().Warn("unable to open archive", "path", path, "error", err)
		return nil, track(err)
	}

	defer z.Close()

	entry := findRootMeta(z.File)
	if entry == nil {
		a.L().Warn("no package.json at archive root", "path", path)
		return nil, ErrNoMetadata
	}

	r, err := entry.Open()
	if err != nil {
		a.L().Warn("unable to read package.json", "path", path, "error", err)
		return nil, track(err)
	}

	defer r.Close()

	var meta data.PackageMeta

	err = json.NewDecoder(r).Decode(&meta)
	if err != nil {
		a.L().Warn("malformed package.json", "path", path, "error", err)
		return nil, track(err)
	}

	return &meta, nil
}

// findRootMeta locates the package.json entry stored at the archive root. An
// entry whose name still has a path separator in front of the suffix lives in
// a subfolder and is ignored.
func findRootMeta(files []*zip.File) *zip.File {
	for _, f := range files {
		if !strings.HasSuffix(f.Name, MetadataName) {
			continue
		}

		if strings.ContainsRune(strings.TrimSuffix(f.Name, MetadataName), '/') {
			continue
		}

		return f
	}

	return nil
}
