package logger

var (
	ErrorChain  = errorChain
	FormatChain = formatChain
)
