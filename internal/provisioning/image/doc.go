// Package image prepares the container image a deployment runs and purges
// the local build artifacts on teardown.
//
// The Preparer runs before any cloud resource is touched. A locally present
// image is used as is. A missing one is compiled with the configured build
// command, packaged by the Docker daemon, verified, and pushed when its
// registry host matches the configured pattern.
package image
