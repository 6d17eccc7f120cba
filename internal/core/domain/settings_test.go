package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docmk/internal/core/domain"
)

func TestSettings_Set(t *testing.T) {
	s := domain.DefaultSettings()

	require.NoError(t, s.Set("SPHINXOPTS", "-W"))
	require.NoError(t, s.Set("PAPER", "a4"))
	require.NoError(t, s.Set("SPHINXBUILD", "python -m sphinx"))
	require.NoError(t, s.Set("BUILDDIR", "out"))

	assert.Equal(t, "-W", s.SphinxOpts)
	assert.Equal(t, "a4", s.Paper)
	assert.Equal(t, "python -m sphinx", s.SphinxBuild)
	assert.Equal(t, "out", s.BuildDir)

	err := s.Set("LANGUAGE", "de")
	require.ErrorContains(t, err, domain.ErrUnknownVariable.Error())
}

func TestSettings_SphinxArgs(t *testing.T) {
	s := domain.DefaultSettings()
	s.BuildDir = "out"
	s.Paper = "letter"
	s.SphinxOpts = "-j auto"

	args, err := s.SphinxArgs(domain.BuilderDoctest)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"sphinx-build", "-b", "doctest", "-d", "out/doctrees",
		"-D", "latex_paper_size=letter",
		"-j", "auto",
		".", "out/doctest",
	}, args)
}

func TestSettings_SphinxArgs_Quoting(t *testing.T) {
	tests := []struct {
		name        string
		sphinxBuild string
		sphinxOpts  string
		wantTool    []string
		wantOpts    []string
	}{
		{
			name:       "double quotes",
			sphinxOpts: `-D html_title="My Docs"`,
			wantTool:   []string{"sphinx-build"},
			wantOpts:   []string{"-D", "html_title=My Docs"},
		},
		{
			name:       "single quotes",
			sphinxOpts: `-D 'project=A "quoted" name' -W`,
			wantTool:   []string{"sphinx-build"},
			wantOpts:   []string{"-D", `project=A "quoted" name`, "-W"},
		},
		{
			name:       "escaped space",
			sphinxOpts: `-c conf\ dir`,
			wantTool:   []string{"sphinx-build"},
			wantOpts:   []string{"-c", "conf dir"},
		},
		{
			name:        "quoted tool path",
			sphinxBuild: `"/opt/my tools/python" -m sphinx`,
			wantTool:    []string{"/opt/my tools/python", "-m", "sphinx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			s.SphinxOpts = tt.sphinxOpts
			if tt.sphinxBuild != "" {
				s.SphinxBuild = tt.sphinxBuild
			}

			args, err := s.SphinxArgs(domain.BuilderHTML)
			require.NoError(t, err)

			want := append([]string{}, tt.wantTool...)
			want = append(want, "-b", "html", "-d", "_build/doctrees")
			want = append(want, tt.wantOpts...)
			want = append(want, ".", "_build/html")
			assert.Equal(t, want, args)
		})
	}
}

func TestSettings_SphinxArgs_UnbalancedQuotes(t *testing.T) {
	s := domain.DefaultSettings()
	s.SphinxOpts = `-D html_title="My Docs`

	_, err := s.SphinxArgs(domain.BuilderHTML)
	require.ErrorContains(t, err, domain.ErrInvalidQuoting.Error())

	_, err = domain.NewRecipeBook(s)
	require.ErrorContains(t, err, domain.ErrInvalidQuoting.Error())
}

func TestStep_String(t *testing.T) {
	tests := []struct {
		name string
		step domain.Step
		want string
	}{
		{name: "exec", step: domain.Exec("sphinx-build", "-b", "html"), want: "sphinx-build -b html"},
		{name: "exec in dir", step: domain.ExecIn("_build/latex", "make", "all-pdf"), want: "cd _build/latex && make all-pdf"},
		{name: "mkdir", step: domain.Mkdir("a", "b"), want: "mkdir -p a b"},
		{name: "remove", step: domain.Remove("_build/*"), want: "rm -rf _build/*"},
		{name: "echo", step: domain.Echo(`say "hi"`), want: `echo "say \"hi\""`},
		{name: "empty echo", step: domain.Echo(""), want: "echo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.String())
		})
	}
}
