// Package docker talks to the local Docker daemon: it checks for, builds,
// pushes and removes the application image.
//
// ImageStore is the seam the deploy pipeline depends on. Client is the
// Engine API implementation and MockImageStore the test double.
package docker
