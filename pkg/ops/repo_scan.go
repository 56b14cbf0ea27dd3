package ops

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lab47.dev/vpmidx/pkg/config"
	"lab47.dev/vpmidx/pkg/data"
	"lab47.dev/vpmidx/pkg/progress"
)

const ArchivePrefix = "vpm."

type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipBadFilename
	SkipNoMetadata
	SkipNoName
)

func (s SkipReason) String() string {
	switch s {
	case SkipNone:
		return "none"
	case SkipBadFilename:
		return "bad-filename"
	case SkipNoMetadata:
		return "no-metadata"
	case SkipNoName:
		return "no-name"
	default:
		return "unknown"
	}
}

// ScanResult records the outcome for one examined archive. When Skip is
// SkipNone, Record holds the version record that went into the index.
type ScanResult struct {
	Dir      string
	Filename string
	Package  string
	Version  string
	Skip     SkipReason
	Record   *data.VersionRecord
}

// RepoScan walks the immediate subdirectories of the scan root and
// accumulates a version record for every archive it can fully read. Per-file
// failures are logged and recorded as skips; they never abort the scan.
type RepoScan struct {
	common

	Results []ScanResult
}

type candidate struct {
	dir  string
	name string
}

func (r *RepoScan) Scan(ctx context.Context, cfg *config.Repo) (map[string]*data.PackageRecord, error) {
	root := cfg.ScanRoot
	if root == "" {
		root = "."
	}

	candidates, err := r.gather(root)
	if err != nil {
		return nil, err
	}

	pb := progress.Count(ctx, int64(len(candidates)), "Indexing archives")
	defer pb.Close()

	var rm ArchiveReadMeta
	rm.common = r.common

	packages := map[string]*data.PackageRecord{}

	for _, c := range candidates {
		res := r.scanArchive(&rm, cfg, root, c)

		r.Results = append(r.Results, res)

		pb.Tick()

		if res.Skip != SkipNone {
			continue
		}

		pkg, ok := packages[res.Package]
		if !ok {
			pkg = &data.PackageRecord{
				Versions: map[string]*data.VersionRecord{},
			}

			packages[res.Package] = pkg
		}

		pkg.Versions[res.Version] = res.Record

		r.L().Info("added package version", "package", res.Package, "version", res.Version)
	}

	return packages, nil
}

// gather lists every candidate archive under root. os.ReadDir returns
// entries sorted by name, so duplicate (package, version) keys resolve
// last-seen-wins in lexicographic filename order, making output stable
// across runs.
func (r *RepoScan) gather(root string) ([]candidate, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, track(err)
	}

	var out []candidate

	for _, d := range dirs {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}

		r.L().Info("scanning directory", "dir", d.Name())

		files, err := os.ReadDir(filepath.Join(root, d.Name()))
		if err != nil {
			r.L().Warn("unable to list directory", "dir", d.Name(), "error", err)
			continue
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}

			name := f.Name()

			if !strings.HasPrefix(name, ArchivePrefix) || !strings.HasSuffix(name, ".zip") {
				continue
			}

			out = append(out, candidate{dir: d.Name(), name: name})
		}
	}

	return out, nil
}

func (r *RepoScan) scanArchive(rm *ArchiveReadMeta, cfg *config.Repo, root string, c candidate) ScanResult {
	res := ScanResult{Dir: c.dir, Filename: c.name}

	version, ok := ExtractVersion(c.name)
	if !ok {
		r.L().Warn("could not extract version from filename", "file", c.name)
		res.Skip = SkipBadFilename
		return res
	}

	res.Version = version

	path := filepath.Join(root, c.dir, c.name)

	meta, err := rm.Read(path)
	if err != nil {
		res.Skip = SkipNoMetadata
		return res
	}

	if meta.Name == "" {
		r.L().Warn("no package name in metadata", "path", path)
		res.Skip = SkipNoName
		return res
	}

	if meta.Version != "" && meta.Version != version {
		r.L().Warn("metadata version disagrees with filename",
			"path", path,
			"filename-version", version,
			"metadata-version", meta.Version,
		)
	}

	url := strings.NewReplacer(
		"{plugin_name}", meta.DisplayName,
		"{filename}", c.name,
	).Replace(cfg.DownloadURL)

	rec := &data.VersionRecord{
		Name:            meta.Name,
		DisplayName:     meta.DisplayName,
		Version:         version,
		Unity:           meta.Unity,
		Description:     meta.Description,
		URL:             url,
		VPMDependencies: meta.VPMDependencies,
		Author:          meta.Author,
	}

	if cfg.Checksums {
		sum, err := fileSHA256(path)
		if err != nil {
			r.L().Warn("unable to checksum archive", "path", path, "error", err)
		} else {
			rec.ZipSHA256 = sum
		}
	}

	res.Package = meta.Name
	res.Record = rec

	return res
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", track(err)
	}

	defer f.Close()

	h := sha256.New()

	_, err = io.Copy(h, f)
	if err != nil {
		return "", track(err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
