// Package exitcode lists the process exit codes of the visitmart CLI.
package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	CopyError       = 4
	TransformError  = 5
	GenerateError   = 6
)
