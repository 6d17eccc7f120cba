package domain

import (
	"strings"
)

// StepKind identifies how a recipe step is carried out.
type StepKind uint8

const (
	// StepExec runs an external command.
	StepExec StepKind = iota
	// StepMkdir creates directories including parents.
	StepMkdir
	// StepRemove removes files and directories. Paths may be glob patterns.
	StepRemove
	// StepEcho prints a message.
	StepEcho
)

// String returns the name of the step kind.
func (k StepKind) String() string {
	switch k {
	case StepExec:
		return "exec"
	case StepMkdir:
		return "mkdir"
	case StepRemove:
		return "remove"
	case StepEcho:
		return "echo"
	default:
		return "unknown"
	}
}

// Step is a single recipe line.
type Step struct {
	Kind StepKind
	// Command is the argv of an exec step.
	Command []string
	// Dir is the working directory of an exec step, relative to the docs root.
	Dir string
	// Paths are the operands of mkdir and remove steps, relative to the docs root.
	Paths []string
	// Message is the text printed by an echo step.
	Message string
	// IgnoreError lets the recipe continue when the step fails.
	IgnoreError bool
	// Silent suppresses echoing the step line before it runs.
	Silent bool
}

// Exec returns an exec step for the given argv.
func Exec(argv ...string) Step {
	return Step{Kind: StepExec, Command: argv}
}

// ExecIn returns an exec step running argv inside dir.
func ExecIn(dir string, argv ...string) Step {
	return Step{Kind: StepExec, Command: argv, Dir: dir}
}

// Mkdir returns a mkdir step for the given paths.
func Mkdir(paths ...string) Step {
	return Step{Kind: StepMkdir, Paths: paths}
}

// Remove returns a remove step for the given paths or patterns.
func Remove(paths ...string) Step {
	return Step{Kind: StepRemove, Paths: paths}
}

// Echo returns a silent echo step.
func Echo(msg string) Step {
	return Step{Kind: StepEcho, Message: msg, Silent: true}
}

// String renders the step the way a shell recipe line would read.
func (s Step) String() string {
	var line string
	switch s.Kind {
	case StepExec:
		line = strings.Join(s.Command, " ")
		if s.Dir != "" && s.Dir != SourceDir {
			line = "cd " + s.Dir + " && " + line
		}
	case StepMkdir:
		line = "mkdir -p " + strings.Join(s.Paths, " ")
	case StepRemove:
		line = "rm -rf " + strings.Join(s.Paths, " ")
	case StepEcho:
		line = "echo"
		if s.Message != "" {
			line += " " + quoteEcho(s.Message)
		}
	}
	return line
}

func quoteEcho(msg string) string {
	return `"` + strings.ReplaceAll(msg, `"`, `\"`) + `"`
}

// Target is a named recipe invocable from the command line.
type Target struct {
	Name string
	// Description is shown by the help target and the list command.
	// Targets without a description are not advertised.
	Description  string
	Dependencies []string
	Steps        []Step
}
