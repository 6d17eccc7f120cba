package config

// Docfile is the structure of docmk.yaml.
// Every field is optional; unset fields keep their defaults.
type Docfile struct {
	Version     string     `yaml:"version"`
	Root        string     `yaml:"root"`
	SphinxBuild string     `yaml:"sphinxbuild"`
	SphinxOpts  string     `yaml:"sphinxopts"`
	Paper       string     `yaml:"paper"`
	BuildDir    string     `yaml:"builddir"`
	API         *APIDTO    `yaml:"api"`
	PDF         *PDFDTO    `yaml:"pdf"`
	Deploy      *DeployDTO `yaml:"deploy"`
}

// APIDTO configures the API stub generator.
type APIDTO struct {
	Generator []string `yaml:"generator"`
	Output    string   `yaml:"output"`
}

// PDFDTO configures the LaTeX to PDF step.
type PDFDTO struct {
	Command []string `yaml:"command"`
}

// DeployDTO configures the upload target.
type DeployDTO struct {
	Destination string `yaml:"destination"`
}

// SupportedVersion is the only docmk.yaml version understood.
const SupportedVersion = "1"
