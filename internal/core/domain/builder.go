package domain

// Builder is an output format requested from the documentation tool.
type Builder string

const (
	// BuilderHTML renders standalone HTML pages.
	BuilderHTML Builder = "html"
	// BuilderLaTeX renders LaTeX sources for PDF generation.
	BuilderLaTeX Builder = "latex"
	// BuilderChanges renders an overview of changed, added and deprecated items.
	BuilderChanges Builder = "changes"
	// BuilderLinkcheck validates external links.
	BuilderLinkcheck Builder = "linkcheck"
	// BuilderDoctest runs doctests embedded in the documentation.
	BuilderDoctest Builder = "doctest"
)

// builders lists every builder a recipe invokes.
var builders = []Builder{BuilderHTML, BuilderLaTeX, BuilderChanges, BuilderLinkcheck, BuilderDoctest}
