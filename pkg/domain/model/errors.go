package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrTagInvalidRequest marks a request that cannot be served as given
	ErrTagInvalidRequest = goerr.NewTag("invalid_request")
	// ErrTagIncompatibleFlags marks a flag combination that makes no sense (--demo --solution)
	ErrTagIncompatibleFlags = goerr.NewTag("incompatible_flags")

	// ErrTagNotFound marks a 404 from the materials server, usually a misspelled slug
	ErrTagNotFound = goerr.NewTag("not_found")
	// ErrTagRemote marks any other non-success response
	ErrTagRemote = goerr.NewTag("remote_error")
	// ErrTagTransport marks network-level failures (DNS, refused connection, timeout)
	ErrTagTransport = goerr.NewTag("transport")

	// ErrTagIO marks local disk trouble
	ErrTagIO = goerr.NewTag("io")
	// ErrTagAlreadyExists marks a top-level archive entry colliding with an existing path
	ErrTagAlreadyExists = goerr.NewTag("already_exists")
	// ErrTagInvalidArchive marks an archive that cannot be read or holds unsafe paths
	ErrTagInvalidArchive = goerr.NewTag("invalid_archive")
)

var taxonomy = []struct {
	has  func(error) bool
	kind string
}{
	{func(e error) bool { return goerr.HasTag(e, ErrTagInvalidRequest) }, "config_error"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagIncompatibleFlags) }, "config_error"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagNotFound) }, "not_found"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagRemote) }, "remote_error"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagTransport) }, "transport"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagIO) }, "io_error"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagAlreadyExists) }, "already_exists"},
	{func(e error) bool { return goerr.HasTag(e, ErrTagInvalidArchive) }, "invalid_archive"},
}

// KindOf returns the taxonomy name of err, or "unknown" when it carries no tag
func KindOf(err error) string {
	for _, t := range taxonomy {
		if t.has(err) {
			return t.kind
		}
	}
	return "unknown"
}

// IsUserError reports whether err is something the user fixes by changing the
// invocation or their filesystem, as opposed to a fault worth reporting.
func IsUserError(err error) bool {
	return goerr.HasTag(err, ErrTagInvalidRequest) ||
		goerr.HasTag(err, ErrTagIncompatibleFlags) ||
		goerr.HasTag(err, ErrTagNotFound) ||
		goerr.HasTag(err, ErrTagAlreadyExists)
}
