// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// version.go — build-time version metadata injected via -ldflags and stamped
// into the comment of every archive zipstore writes.

package zipstore

// Build-time variables injected via -ldflags by the Makefile.
// Defaults represent an unversioned local development build.
//
//	BuildDate format : YYYY.MM.DD-HHMM  (24-hour clock)
//	BuildEnv  values : dev | qa | prod
var (
	// Set by: -ldflags "-X 'github.com/AndrewDonelson/zipstore.BuildDate=2026.02.28-1750'"
	BuildDate = "0000.00.00-0000"

	// Set by: -ldflags "-X 'github.com/AndrewDonelson/zipstore.BuildEnv=dev'"
	BuildEnv = "dev"
)

// Version returns the full version string in the form "YYYY.MM.DD-HHMM-env".
func Version() string {
	return BuildDate + "-" + BuildEnv
}

// defaultComment is the comment given to new archives when Config.Comment is
// empty.
func defaultComment() string {
	return "zipstore " + Version()
}
