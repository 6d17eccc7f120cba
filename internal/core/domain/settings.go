package domain

import (
	"github.com/google/shlex"
	"go.trai.ch/zerr"
)

// Variable names accepted from the environment and from VAR=value arguments.
const (
	VarSphinxOpts  = "SPHINXOPTS"
	VarSphinxBuild = "SPHINXBUILD"
	VarPaper       = "PAPER"
	VarBuildDir    = "BUILDDIR"
)

// Paper sizes with a matching LaTeX option.
const (
	PaperA4     = "a4"
	PaperLetter = "letter"
)

// Settings holds every variable the recipes are built from.
type Settings struct {
	// Root is the absolute docs root. Relative paths in steps resolve against it.
	Root string

	SphinxBuild string
	// SphinxOpts is passed through to every sphinx invocation, split into words
	// with shell quoting rules.
	SphinxOpts string
	Paper      string
	BuildDir   string

	APIGenerator []string
	APIOutputDir string
	PDFCommand   []string

	DeployDestination string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Root:              ".",
		SphinxBuild:       DefaultSphinxBuild,
		BuildDir:          DefaultBuildDir,
		APIGenerator:      DefaultAPIGenerator(),
		APIOutputDir:      DefaultAPIOutputDir,
		PDFCommand:        DefaultPDFCommand(),
		DeployDestination: DefaultDeployDestination,
	}
}

// Set assigns a variable by its make-style name.
func (s *Settings) Set(name, value string) error {
	switch name {
	case VarSphinxOpts:
		s.SphinxOpts = value
	case VarSphinxBuild:
		s.SphinxBuild = value
	case VarPaper:
		s.Paper = value
	case VarBuildDir:
		s.BuildDir = value
	default:
		return zerr.With(ErrUnknownVariable, "variable", name)
	}
	return nil
}

// PaperOption returns the LaTeX paper size define for the configured paper.
// Values other than a4 and letter yield no option.
func (s Settings) PaperOption() []string {
	switch s.Paper {
	case PaperA4, PaperLetter:
		return []string{"-D", "latex_paper_size=" + s.Paper}
	default:
		return nil
	}
}

// SphinxArgs returns the full documentation tool invocation for a builder.
// SphinxBuild and SphinxOpts are split into words the way sh splits a command line.
func (s Settings) SphinxArgs(b Builder) ([]string, error) {
	tool, err := splitWords(VarSphinxBuild, s.SphinxBuild)
	if err != nil {
		return nil, err
	}
	opts, err := splitWords(VarSphinxOpts, s.SphinxOpts)
	if err != nil {
		return nil, err
	}
	paper := s.PaperOption()

	args := make([]string, 0, len(tool)+6+len(paper)+len(opts))
	args = append(args, tool...)
	args = append(args, "-b", string(b), "-d", DoctreesDir(s.BuildDir))
	args = append(args, paper...)
	args = append(args, opts...)
	args = append(args, SourceDir, OutputDir(s.BuildDir, b))
	return args, nil
}

func splitWords(name, value string) ([]string, error) {
	words, err := shlex.Split(value)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, ErrInvalidQuoting.Error()), "variable", name)
		return nil, zerr.With(err, "value", value)
	}
	return words, nil
}
