package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "docmk.yaml"

	// EnvFileName is the name of the optional variables file in the docs root.
	EnvFileName = ".env"

	// DefaultBuildDir is the directory all builders write into.
	DefaultBuildDir = "_build"

	// DoctreesDirName is the name of the pickled doctree cache directory.
	DoctreesDirName = "doctrees"

	// DefaultAPIOutputDir is where the API stub generator writes its pages.
	DefaultAPIOutputDir = "api/generated"

	// DefaultSphinxBuild is the documentation build executable.
	DefaultSphinxBuild = "sphinx-build"

	// DefaultDeployDestination is the rsync destination of the sf_fer_perez target.
	DefaultDeployDestination = "fer_perez,nipy@web.sourceforge.net:htdocs/nitime"

	// SourceDir is the Sphinx source directory, relative to the docs root.
	SourceDir = "."

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
)

// DefaultAPIGenerator returns the command that generates API reference stubs.
func DefaultAPIGenerator() []string {
	return []string{"python", "../tools/build_modref_templates.py"}
}

// DefaultPDFCommand returns the command run inside the LaTeX output directory.
func DefaultPDFCommand() []string {
	return []string{"make", "all-pdf"}
}

// OutputDir returns the output directory of a builder under buildDir.
func OutputDir(buildDir string, b Builder) string {
	return filepath.Join(buildDir, string(b))
}

// DoctreesDir returns the doctree cache directory under buildDir.
func DoctreesDir(buildDir string) string {
	return filepath.Join(buildDir, DoctreesDirName)
}
