// Package execshell runs external tools with structured logging.
//
// ShellExecutor wraps a CommandRunner, logs every command through zap and turns
// non-zero exit codes into CommandFailedError values that keep the captured
// output. OSCommandRunner is the os/exec backed runner used in production.
package execshell
