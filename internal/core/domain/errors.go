package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when a target with the same name is added twice.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingDependency is returned when a target references a prerequisite that doesn't exist.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the prerequisite graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTargetNotFound is returned when a requested target is not defined.
	ErrTargetNotFound = zerr.New("no rule to make target")

	// ErrInvalidTargetName is returned when a target name is empty or contains whitespace.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrEmptyCommand is returned when an exec step has no command.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrUnknownVariable is returned when a VAR=value argument names an unsupported variable.
	ErrUnknownVariable = zerr.New("unknown variable")

	// ErrInvalidQuoting is returned when a variable holding command words has unbalanced quotes.
	ErrInvalidQuoting = zerr.New("invalid quoting")

	// ErrRemoveRoot is returned when a remove step would delete the docs root or a parent of it.
	ErrRemoveRoot = zerr.New("refusing to remove the docs root")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileReadFailed is returned when the .env file exists but cannot be parsed.
	ErrEnvFileReadFailed = zerr.New("failed to read env file")

	// ErrUnsupportedConfigVersion is returned when docmk.yaml declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrFailedToGetRoot is returned when the docs root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of docs root")

	// ErrBuildExecutionFailed is returned when a run finished with at least one failed target.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTargetFailed is returned when a step of a target fails.
	ErrTargetFailed = zerr.New("target failed")

	// ErrTargetSkipped is returned in keep-going mode for targets whose prerequisites failed.
	ErrTargetSkipped = zerr.New("target not remade because of errors")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrRemoveFailed is returned when removing a path fails.
	ErrRemoveFailed = zerr.New("failed to remove path")

	// ErrMkdirFailed is returned when creating a directory fails.
	ErrMkdirFailed = zerr.New("failed to create directory")

	// ErrInvalidOutputMode is returned for an unknown --output value.
	ErrInvalidOutputMode = zerr.New("invalid output mode")

	// ErrInvalidLogFormat is returned for an unknown --log-format value.
	ErrInvalidLogFormat = zerr.New("invalid log format")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
