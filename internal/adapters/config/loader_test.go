package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docmk/internal/adapters/config"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func newLoader(t *testing.T, env map[string]string) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	loader := config.NewLoader(mockLogger)
	loader.LookupEnv = envOf(env)
	return loader, mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t, nil)
	dir := t.TempDir()

	s, err := loader.Load(dir)
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.Root = dir
	assert.Equal(t, &want, s)
}

func TestLoader_Load_Docfile(t *testing.T) {
	loader, _ := newLoader(t, nil)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
version: "1"
sphinxopts: "-W --keep-going"
paper: a4
builddir: out
api:
  generator: ["python", "tools/apigen.py"]
  output: reference/api
pdf:
  command: ["latexmk", "-pdf"]
deploy:
  destination: docs@example.org:/srv/docs
`)
	sub := filepath.Join(root, "source", "guide")
	require.NoError(t, os.MkdirAll(sub, domain.DirPerm))

	s, err := loader.Load(sub)
	require.NoError(t, err)

	assert.Equal(t, root, s.Root)
	assert.Equal(t, "sphinx-build", s.SphinxBuild)
	assert.Equal(t, "-W --keep-going", s.SphinxOpts)
	assert.Equal(t, "a4", s.Paper)
	assert.Equal(t, "out", s.BuildDir)
	assert.Equal(t, []string{"python", "tools/apigen.py"}, s.APIGenerator)
	assert.Equal(t, "reference/api", s.APIOutputDir)
	assert.Equal(t, []string{"latexmk", "-pdf"}, s.PDFCommand)
	assert.Equal(t, "docs@example.org:/srv/docs", s.DeployDestination)
}

func TestLoader_Load_Root(t *testing.T) {
	t.Run("Relative Root", func(t *testing.T) {
		loader, _ := newLoader(t, nil)
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "doc"), domain.DirPerm))
		createFile(t, dir, domain.ConfigFileName, "root: doc\n")

		s, err := loader.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "doc"), s.Root)
	})

	t.Run("Missing Root Warns", func(t *testing.T) {
		loader, mockLogger := newLoader(t, nil)
		dir := t.TempDir()
		createFile(t, dir, domain.ConfigFileName, "root: nowhere\n")
		mockLogger.EXPECT().Warn(gomock.Any())

		s, err := loader.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "nowhere"), s.Root)
	})
}

func TestLoader_Load_Precedence(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "sphinxopts: -W\npaper: letter\nbuilddir: from-yaml\n")
	createFile(t, dir, domain.EnvFileName, "SPHINXOPTS=-q\nPAPER=a4\nUNRELATED=1\n")

	loader, _ := newLoader(t, map[string]string{
		"PAPER":       "letter",
		"SPHINXBUILD": "python -m sphinx",
	})

	s, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "-q", s.SphinxOpts, ".env overrides docmk.yaml")
	assert.Equal(t, "letter", s.Paper, "environment overrides .env")
	assert.Equal(t, "python -m sphinx", s.SphinxBuild)
	assert.Equal(t, "from-yaml", s.BuildDir)
}

func TestLoader_Load_EmptyEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "sphinxopts: -W\n")
	loader, _ := newLoader(t, map[string]string{"SPHINXOPTS": ""})

	s, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, s.SphinxOpts)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "Unsupported Version",
			content:     "version: \"2\"\n",
			expectedErr: domain.ErrUnsupportedConfigVersion,
		},
		{
			name:        "Invalid YAML",
			content:     "paper: [a4\n",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "Wrong Type",
			content:     "api:\n  generator: 3\n",
			expectedErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, nil)
			dir := t.TempDir()
			createFile(t, dir, domain.ConfigFileName, tt.content)

			_, err := loader.Load(dir)
			require.ErrorContains(t, err, tt.expectedErr.Error())
		})
	}
}
