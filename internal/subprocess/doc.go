// Package subprocess prepares the toolkit-server child process for a stdio
// session.
//
// The go-sdk CommandTransport owns the process lifecycle and the stdin and
// stdout pipes. This package builds the command and captures the server's
// stderr so that startup failures can be reported with the server's own
// explanation.
package subprocess
