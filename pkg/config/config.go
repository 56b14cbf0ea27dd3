package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/mitchellh/go-homedir"

	"lab47.dev/vpmidx/pkg/data"
)

// Repo is the repository descriptor plus the knobs for one index run. It is
// loaded once at startup and handed to the ops untouched; nothing mutates it
// after load.
type Repo struct {
	path string

	// Actual Config
	Name        string `json:"name"`
	Id          string `json:"id"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	DownloadURL string `json:"download-url"`
	ScanRoot    string `json:"scan-root"`
	OutputPath  string `json:"output-path"`
	Checksums   bool   `json:"checksums"`
}

const (
	DefaultConfigPath = "~/.config/vpmidx/config.json"
	DefaultScanRoot   = "."
	DefaultOutputPath = "index.json"
)

func LoadRepo() (*Repo, error) {
	if loc := os.Getenv("VPMIDX_CONFIG"); loc != "" {
		return loadFile(loc)
	}

	path, err := homedir.Expand(DefaultConfigPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}

	return updateFromEnv(&Repo{})
}

func loadFile(path string) (*Repo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	var cfg Repo

	err = json.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return nil, err
	}

	cfg.path = path

	return updateFromEnv(&cfg)
}

func updateFromEnv(cfg *Repo) (*Repo, error) {
	if root := os.Getenv("VPMIDX_SCAN_ROOT"); root != "" {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !fi.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", root)
		}

		cfg.ScanRoot = root
	}

	if path := os.Getenv("VPMIDX_OUTPUT"); path != "" {
		cfg.OutputPath = path
	}

	if tmpl := os.Getenv("VPMIDX_DOWNLOAD_URL"); tmpl != "" {
		cfg.DownloadURL = tmpl
	}

	if name := os.Getenv("VPMIDX_NAME"); name != "" {
		cfg.Name = name
	}

	if id := os.Getenv("VPMIDX_ID"); id != "" {
		cfg.Id = id
	}

	if url := os.Getenv("VPMIDX_URL"); url != "" {
		cfg.URL = url
	}

	if author := os.Getenv("VPMIDX_AUTHOR"); author != "" {
		cfg.Author = author
	}

	if cfg.ScanRoot == "" {
		cfg.ScanRoot = DefaultScanRoot
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}

	return cfg, nil
}

func (r *Repo) RepoInfo() data.RepoInfo {
	return data.RepoInfo{
		Name:   r.Name,
		Id:     r.Id,
		URL:    r.URL,
		Author: r.Author,
	}
}

// DetectIdentity fills in a missing repo id, index url, or download url
// template from the scan root's git origin remote. A repository laid out as
// github.com/<owner>/<name> publishes its index from <owner>.github.io/<name>
// and serves archives raw from the master branch.
func (r *Repo) DetectIdentity() error {
	if r.Id != "" && r.URL != "" && r.DownloadURL != "" {
		return nil
	}

	repo, err := git.PlainOpenWithOptions(r.ScanRoot, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return err
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		if err == git.ErrRemoteNotFound {
			return r.identityFromPath()
		}

		return err
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return r.identityFromPath()
	}

	host, owner, name, ok := splitRemote(urls[0])
	if !ok {
		return r.identityFromPath()
	}

	if r.Id == "" {
		r.Id = "vpm." + owner
	}

	if r.URL == "" {
		if host == "github.com" {
			r.URL = fmt.Sprintf("https://%s.github.io/%s/index.json", owner, name)
		} else {
			r.URL = fmt.Sprintf("https://%s/%s/%s/index.json", host, owner, name)
		}
	}

	if r.DownloadURL == "" && host == "github.com" {
		r.DownloadURL = fmt.Sprintf(
			"https://raw.githubusercontent.com/%s/%s/master/{plugin_name}/{filename}",
			owner, name)
	}

	return nil
}

// Validate reports configuration the generator cannot run without.
func (r *Repo) Validate() error {
	if r.DownloadURL == "" {
		return fmt.Errorf("no download-url template configured; set download-url in %s or VPMIDX_DOWNLOAD_URL", DefaultConfigPath)
	}

	return nil
}

// welp. I guess we'll use the directory base name
func (r *Repo) identityFromPath() error {
	if r.Id != "" {
		return nil
	}

	abs, err := filepath.Abs(r.ScanRoot)
	if err != nil {
		return err
	}

	r.Id = "vpm." + filepath.Base(abs)

	return nil
}

func splitRemote(url string) (host, owner, name string, ok bool) {
	url = strings.TrimSuffix(url, ".git")

	if idx := strings.Index(url, "://"); idx != -1 {
		url = url[idx+3:]
	} else if idx := strings.Index(url, "@"); idx != -1 {
		url = strings.Replace(url[idx+1:], ":", "/", 1)
	}

	parts := strings.Split(url, "/")
	if len(parts) < 3 {
		return "", "", "", false
	}

	return parts[0], parts[1], parts[2], true
}
