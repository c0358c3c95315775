// Package main provides the backstage CLI, a desktop-app companion for
// managing artists, projects, invoices, and a local music library backed
// by an embedded SQLite store.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/allmyfriends/backstage/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "backstage:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors onto shell exit codes: bad input and missing
// entities are the caller's fault, everything else is a system failure.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrDuplicate),
		errors.Is(err, types.ErrForeignKey):
		return exitUserError
	default:
		return exitSysError
	}
}
