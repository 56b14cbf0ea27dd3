package data

// PackageMeta is the package.json embedded at the root of a plugin archive.
// Only the fields the index cares about are decoded; everything else in the
// file is ignored.
type PackageMeta struct {
	Name            string            `json:"name"`
	DisplayName     string            `json:"displayName"`
	Version         string            `json:"version,omitempty"`
	Unity           string            `json:"unity"`
	Description     string            `json:"description"`
	VPMDependencies map[string]string `json:"vpmDependencies,omitempty"`
	Author          string            `json:"author,omitempty"`
}
