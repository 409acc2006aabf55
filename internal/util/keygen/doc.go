// Package keygen generates random secrets.
//
// Tokens come from crypto/rand and are URL-safe base64 encoded so they can
// be stored in env files and passed as container app secrets verbatim.
package keygen
