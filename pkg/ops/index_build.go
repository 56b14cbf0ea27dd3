package ops

import (
	"lab47.dev/vpmidx/pkg/data"
)

// IndexBuild wraps the scanned package map with the repository descriptor.
// Pure assembly, no transformation of the map.
type IndexBuild struct{}

func (b *IndexBuild) Build(info data.RepoInfo, packages map[string]*data.PackageRecord) *data.Index {
	if packages == nil {
		packages = map[string]*data.PackageRecord{}
	}

	return &data.Index{
		Name:     info.Name,
		Id:       info.Id,
		URL:      info.URL,
		Author:   info.Author,
		Packages: packages,
	}
}
