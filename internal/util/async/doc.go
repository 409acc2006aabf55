// Package async runs independent operations concurrently.
//
// [Gather] is used by the doctor command to probe the Docker daemon and
// Azure at the same time, each under its own timeout.
package async
