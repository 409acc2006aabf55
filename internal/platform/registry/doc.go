// Package registry handles container image references and the remote
// registries they live in: host matching, credentials and deletion.
package registry
