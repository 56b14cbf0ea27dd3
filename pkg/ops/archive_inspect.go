package ops

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	"lab47.dev/vpmidx/pkg/data"
)

// ArchiveInspect prints the contents and metadata of one plugin archive.
// Diagnostic only; nothing here touches the index.
type ArchiveInspect struct {
	common

	Meta *data.PackageMeta
}

func (r *ArchiveInspect) Show(path string, show io.Writer) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return track(err)
	}

	sum := blake2b.Sum256(raw)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return track(err)
	}

	for _, f := range zr.File {
		fmt.Fprintf(show, "%s\t%d\t%s\n", f.Mode().String(), f.UncompressedSize64, f.Name)
	}

	entry := findRootMeta(zr.File)
	if entry == nil {
		fmt.Fprintf(show, "\n! Warning: No package.json Detected\n")
		fmt.Fprintf(show, "Digest:\t%s\n", base58.Encode(sum[:]))
		return nil
	}

	rc, err := entry.Open()
	if err != nil {
		return track(err)
	}

	defer rc.Close()

	var meta data.PackageMeta

	err = json.NewDecoder(rc).Decode(&meta)
	if err != nil {
		return track(err)
	}

	r.Meta = &meta

	fmt.Fprintf(show, "\nName:\t%s\n", meta.Name)
	fmt.Fprintf(show, "Display Name:\t%s\n", meta.DisplayName)
	fmt.Fprintf(show, "Unity:\t%s\n", meta.Unity)

	if v, ok := ExtractVersion(filepath.Base(path)); ok {
		fmt.Fprintf(show, "Version:\t%s\n", v)
	}

	if meta.Version != "" {
		fmt.Fprintf(show, "Metadata Version:\t%s\n", meta.Version)
	}

	var deps []string

	for k, v := range meta.VPMDependencies {
		deps = append(deps, k+"="+v)
	}

	sort.Strings(deps)

	fmt.Fprintf(show, "Dependencies:\t%s\n", strings.Join(deps, ", "))
	fmt.Fprintf(show, "Digest:\t%s\n", base58.Encode(sum[:]))

	return nil
}
