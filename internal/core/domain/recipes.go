package domain

import (
	"fmt"
	"path/filepath"
)

// Target names of the recipe book.
const (
	TargetHelp      = "help"
	TargetClean     = "clean"
	TargetAPI       = "api"
	TargetHTMLOnly  = "htmlonly"
	TargetHTML      = "html"
	TargetLaTeX     = "latex"
	TargetPDF       = "pdf"
	TargetAll       = "all"
	TargetChanges   = "changes"
	TargetLinkcheck = "linkcheck"
	TargetDoctest   = "doctest"
	TargetDeploy    = "sf_fer_perez"
)

// helpNameWidth is the column the target descriptions of the usage text align to.
const helpNameWidth = 9

// NewRecipeBook builds the documentation targets from the given settings.
// help is declared first, which makes it the default target.
func NewRecipeBook(s Settings) (*Graph, error) {
	html := OutputDir(s.BuildDir, BuilderHTML)
	latex := OutputDir(s.BuildDir, BuilderLaTeX)

	sphinx := make(map[Builder]Step, len(builders))
	for _, b := range builders {
		args, err := s.SphinxArgs(b)
		if err != nil {
			return nil, err
		}
		sphinx[b] = Exec(args...)
	}
	clean := Remove(filepath.Join(s.BuildDir, "*"), "*~", s.APIOutputDir)
	clean.IgnoreError = true

	targets := []*Target{
		{
			Name:        TargetClean,
			Description: "to remove all generated files",
			Steps:       []Step{clean},
		},
		{
			Name:        TargetAPI,
			Description: "to make the auto-generated API files",
			Steps: []Step{
				Exec(s.APIGenerator...),
				Echo("Build API docs finished."),
			},
		},
		{
			Name:  TargetHTMLOnly,
			Steps: sphinxSteps(s, sphinx, BuilderHTML, "Build finished. The HTML pages are in "+html+"."),
		},
		{
			Name:         TargetHTML,
			Description:  "to make standalone HTML files",
			Dependencies: []string{TargetAPI, TargetHTMLOnly},
		},
		{
			Name:         TargetLaTeX,
			Description:  "to make LaTeX files, you can set PAPER=a4 or PAPER=letter",
			Dependencies: []string{TargetAPI},
			Steps: sphinxSteps(s, sphinx, BuilderLaTeX,
				"Build finished; the LaTeX files are in "+latex+".",
				"Run `make all-pdf' or `make all-ps' in that directory to run these through (pdf)latex."),
		},
		{
			Name:         TargetPDF,
			Description:  "to make PDF from LaTeX, you can set PAPER=a4 or PAPER=letter",
			Dependencies: []string{TargetLaTeX},
			Steps: []Step{
				ExecIn(latex, s.PDFCommand...),
			},
		},
		{
			Name:         TargetAll,
			Description:  "to make HTML and PDF output",
			Dependencies: []string{TargetHTML, TargetPDF},
		},
		{
			Name:        TargetChanges,
			Description: "to make an overview over all changed/added/deprecated items",
			Steps: sphinxSteps(s, sphinx, BuilderChanges,
				"The overview file is in "+OutputDir(s.BuildDir, BuilderChanges)+"."),
		},
		{
			Name:        TargetLinkcheck,
			Description: "to check all external links for integrity",
			Steps: sphinxSteps(s, sphinx, BuilderLinkcheck,
				"Link check complete; look for any errors in the above output or in "+
					filepath.Join(OutputDir(s.BuildDir, BuilderLinkcheck), "output.txt")+"."),
		},
		{
			Name:        TargetDoctest,
			Description: "to run all doctests embedded in the documentation",
			Steps: sphinxSteps(s, sphinx, BuilderDoctest,
				"Testing of doctests in the sources finished, look at the results in "+
					filepath.Join(OutputDir(s.BuildDir, BuilderDoctest), "output.txt")+"."),
		},
		{
			Name: TargetDeploy,
			Steps: []Step{
				Echo("Copying html files to sourceforge..."),
				Exec("rsync", "-avH", "--delete", "-e", "ssh", html+"/", s.DeployDestination),
			},
		},
	}

	help := &Target{
		Name:  TargetHelp,
		Steps: usageSteps(targets),
	}

	g := NewGraph()
	if err := g.AddTarget(help); err != nil {
		return nil, err
	}
	for _, t := range targets {
		if err := g.AddTarget(t); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// sphinxSteps returns the recipe shared by every documentation builder target.
func sphinxSteps(s Settings, sphinx map[Builder]Step, b Builder, finished ...string) []Step {
	steps := []Step{
		Mkdir(OutputDir(s.BuildDir, b), DoctreesDir(s.BuildDir)),
		sphinx[b],
		Echo(""),
	}
	for _, msg := range finished {
		steps = append(steps, Echo(msg))
	}
	return steps
}

// usageSteps renders the usage text from the advertised targets.
func usageSteps(targets []*Target) []Step {
	steps := []Step{Echo("Please use `docmk run <target>' where <target> is one of")}
	for _, t := range targets {
		if t.Description == "" {
			continue
		}
		steps = append(steps, Echo(fmt.Sprintf("  %-*s %s", helpNameWidth, t.Name, t.Description)))
	}
	return steps
}
