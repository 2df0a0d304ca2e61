package main

import "fmt"

// exitError pins a specific process exit code to an error, per the
// CLI's documented exit codes: 0 ok, 1 usage, 2 read failure, 3 write
// failure. Errors that don't carry one default to 1 in main().
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func readFailure(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func writeFailure(format string, args ...any) error {
	return &exitError{code: 3, err: fmt.Errorf(format, args...)}
}
