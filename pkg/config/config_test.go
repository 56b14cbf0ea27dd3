package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRepo(t *testing.T) {
	top, err := ioutil.TempDir("", "config")
	require.NoError(t, err)

	defer os.RemoveAll(top)

	t.Run("loads the file named by VPMIDX_CONFIG", func(t *testing.T) {
		path := filepath.Join(top, "config.json")

		err := ioutil.WriteFile(path, []byte(`{
			"name": "Example Repo",
			"id": "vpm.example",
			"url": "https://example.github.io/repo/index.json",
			"author": "example",
			"download-url": "https://dl.example.com/{plugin_name}/{filename}"
		}`), 0644)
		require.NoError(t, err)

		os.Setenv("VPMIDX_CONFIG", path)
		defer os.Unsetenv("VPMIDX_CONFIG")

		cfg, err := LoadRepo()
		require.NoError(t, err)

		assert.Equal(t, "Example Repo", cfg.Name)
		assert.Equal(t, "vpm.example", cfg.Id)
		assert.Equal(t, "https://example.github.io/repo/index.json", cfg.URL)
		assert.Equal(t, "example", cfg.Author)
		assert.Equal(t, "https://dl.example.com/{plugin_name}/{filename}", cfg.DownloadURL)

		// defaults fill in anything the file left out
		assert.Equal(t, DefaultScanRoot, cfg.ScanRoot)
		assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := filepath.Join(top, "config2.json")

		err := ioutil.WriteFile(path, []byte(`{"output-path": "out/index.json"}`), 0644)
		require.NoError(t, err)

		os.Setenv("VPMIDX_CONFIG", path)
		os.Setenv("VPMIDX_OUTPUT", "elsewhere/index.json")
		defer os.Unsetenv("VPMIDX_CONFIG")
		defer os.Unsetenv("VPMIDX_OUTPUT")

		cfg, err := LoadRepo()
		require.NoError(t, err)

		assert.Equal(t, "elsewhere/index.json", cfg.OutputPath)
	})

	t.Run("environment overrides the descriptor fields", func(t *testing.T) {
		os.Setenv("VPMIDX_NAME", "Env Repo")
		os.Setenv("VPMIDX_ID", "vpm.env")
		os.Setenv("VPMIDX_URL", "https://env.github.io/repo/index.json")
		os.Setenv("VPMIDX_AUTHOR", "env")
		defer os.Unsetenv("VPMIDX_NAME")
		defer os.Unsetenv("VPMIDX_ID")
		defer os.Unsetenv("VPMIDX_URL")
		defer os.Unsetenv("VPMIDX_AUTHOR")

		cfg, err := updateFromEnv(&Repo{Name: "File Repo"})
		require.NoError(t, err)

		assert.Equal(t, "Env Repo", cfg.Name)
		assert.Equal(t, "vpm.env", cfg.Id)
		assert.Equal(t, "https://env.github.io/repo/index.json", cfg.URL)
		assert.Equal(t, "env", cfg.Author)
	})

	t.Run("rejects a scan root that is not a directory", func(t *testing.T) {
		file := filepath.Join(top, "not-a-dir")
		require.NoError(t, ioutil.WriteFile(file, []byte("x"), 0644))

		os.Setenv("VPMIDX_SCAN_ROOT", file)
		defer os.Unsetenv("VPMIDX_SCAN_ROOT")

		_, err := updateFromEnv(&Repo{})
		assert.Error(t, err)
	})
}

func TestSplitRemote(t *testing.T) {
	t.Run("https remotes", func(t *testing.T) {
		host, owner, name, ok := splitRemote("https://github.com/example/vpmRepo.git")
		require.True(t, ok)
		assert.Equal(t, "github.com", host)
		assert.Equal(t, "example", owner)
		assert.Equal(t, "vpmRepo", name)
	})

	t.Run("ssh remotes", func(t *testing.T) {
		host, owner, name, ok := splitRemote("git@github.com:example/vpmRepo.git")
		require.True(t, ok)
		assert.Equal(t, "github.com", host)
		assert.Equal(t, "example", owner)
		assert.Equal(t, "vpmRepo", name)
	})

	t.Run("rejects unparseable urls", func(t *testing.T) {
		_, _, _, ok := splitRemote("nonsense")
		assert.False(t, ok)
	})
}

func TestDetectIdentity(t *testing.T) {
	top, err := ioutil.TempDir("", "identity")
	require.NoError(t, err)

	defer os.RemoveAll(top)

	t.Run("keeps a fully configured identity", func(t *testing.T) {
		cfg := &Repo{
			Id:          "vpm.example",
			URL:         "https://example.github.io/repo/index.json",
			DownloadURL: "https://dl.example.com/{plugin_name}/{filename}",
			ScanRoot:    top,
		}

		require.NoError(t, cfg.DetectIdentity())

		assert.Equal(t, "vpm.example", cfg.Id)
	})

	t.Run("derives identity and download template from the origin remote", func(t *testing.T) {
		dir := filepath.Join(top, "checkout")
		require.NoError(t, os.Mkdir(dir, 0755))

		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)

		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{"https://github.com/example/vpmRepo.git"},
		})
		require.NoError(t, err)

		cfg := &Repo{ScanRoot: dir}

		require.NoError(t, cfg.DetectIdentity())

		assert.Equal(t, "vpm.example", cfg.Id)
		assert.Equal(t, "https://example.github.io/vpmRepo/index.json", cfg.URL)
		assert.Equal(t,
			"https://raw.githubusercontent.com/example/vpmRepo/master/{plugin_name}/{filename}",
			cfg.DownloadURL)
	})

	t.Run("falls back to the directory base name", func(t *testing.T) {
		dir := filepath.Join(top, "myrepo")
		require.NoError(t, os.Mkdir(dir, 0755))

		cfg := &Repo{ScanRoot: dir}

		require.NoError(t, cfg.identityFromPath())

		assert.Equal(t, "vpm.myrepo", cfg.Id)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects an empty download template", func(t *testing.T) {
		cfg := &Repo{}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download-url")
	})

	t.Run("accepts a configured template", func(t *testing.T) {
		cfg := &Repo{DownloadURL: "https://dl.example.com/{plugin_name}/{filename}"}

		assert.NoError(t, cfg.Validate())
	})
}
