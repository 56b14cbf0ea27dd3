package data

type RepoInfo struct {
	Name   string `json:"name"`
	Id     string `json:"id"`
	URL    string `json:"url"`
	Author string `json:"author"`
}

// VersionRecord describes one published archive of a package. Version is
// always the version parsed from the archive filename, not the version field
// inside the archive's own metadata.
type VersionRecord struct {
	Name            string            `json:"name"`
	DisplayName     string            `json:"displayName"`
	Version         string            `json:"version"`
	Unity           string            `json:"unity"`
	Description     string            `json:"description"`
	URL             string            `json:"url"`
	VPMDependencies map[string]string `json:"vpmDependencies,omitempty"`
	Author          string            `json:"author,omitempty"`
	ZipSHA256       string            `json:"zipSHA256,omitempty"`
}

type PackageRecord struct {
	Versions map[string]*VersionRecord `json:"versions"`
}

// Index is the document written as index.json. Field order here is the key
// order clients see.
type Index struct {
	Name     string                    `json:"name"`
	Id       string                    `json:"id"`
	URL      string                    `json:"url"`
	Author   string                    `json:"author"`
	Packages map[string]*PackageRecord `json:"packages"`
}
