package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// Credentials are explicit registry credentials. The zero value means
// "use the local keychain".
type Credentials struct {
	Username string
	Password string
}

// IsSet reports whether both username and password are present.
func (c Credentials) IsSet() bool {
	return c.Username != "" && c.Password != ""
}

// Host returns the registry host of an image reference. References
// without a host resolve to Docker Hub.
func Host(ref string) (string, error) {
	r, err := name.ParseReference(ref, name.WeakValidation)
	if err != nil {
		return "", fmt.Errorf("parse image reference %q: %w", ref, err)
	}
	return r.Context().RegistryStr(), nil
}

// Matches reports whether the registry host of ref matches the glob
// pattern. An empty pattern never matches.
func Matches(pattern, ref string) bool {
	if pattern == "" {
		return false
	}
	host, err := Host(ref)
	if err != nil {
		return false
	}
	ok, err := path.Match(strings.ToLower(pattern), strings.ToLower(host))
	return err == nil && ok
}

// Authenticator returns basic auth for explicit credentials, falling back
// to the default keychain (docker config, credential helpers).
func Authenticator(ref string, creds Credentials) (authn.Authenticator, error) {
	if creds.IsSet() {
		return &authn.Basic{Username: creds.Username, Password: creds.Password}, nil
	}
	r, err := name.ParseReference(ref, name.WeakValidation)
	if err != nil {
		return nil, fmt.Errorf("parse image reference %q: %w", ref, err)
	}
	auth, err := authn.DefaultKeychain.Resolve(r.Context())
	if err != nil {
		return nil, fmt.Errorf("resolve credentials for %s: %w", r.Context().RegistryStr(), err)
	}
	return auth, nil
}

// AuthConfig resolves the username/password pair for ref. Anonymous access
// yields an empty config.
func AuthConfig(ref string, creds Credentials) (*authn.AuthConfig, error) {
	auth, err := Authenticator(ref, creds)
	if err != nil {
		return nil, err
	}
	cfg, err := auth.Authorization()
	if err != nil {
		return nil, fmt.Errorf("authorize against registry: %w", err)
	}
	return cfg, nil
}

// Exists reports whether the image manifest is present in its registry.
func Exists(ctx context.Context, ref string, creds Credentials) (bool, error) {
	r, opts, err := remoteTarget(ctx, ref, creds)
	if err != nil {
		return false, err
	}
	if _, err := remote.Head(r, opts...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check image %s: %w", ref, err)
	}
	return true, nil
}

// Delete removes the image manifest from its registry. A missing image is
// not an error.
func Delete(ctx context.Context, ref string, creds Credentials) error {
	r, opts, err := remoteTarget(ctx, ref, creds)
	if err != nil {
		return err
	}
	if err := remote.Delete(r, opts...); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image %s: %w", ref, err)
	}
	return nil
}

func remoteTarget(ctx context.Context, ref string, creds Credentials) (name.Reference, []remote.Option, error) {
	r, err := name.ParseReference(ref, name.WeakValidation)
	if err != nil {
		return nil, nil, fmt.Errorf("parse image reference %q: %w", ref, err)
	}
	auth, err := Authenticator(ref, creds)
	if err != nil {
		return nil, nil, err
	}
	return r, []remote.Option{remote.WithContext(ctx), remote.WithAuth(auth)}, nil
}

func isNotFound(err error) bool {
	var terr *transport.Error
	return errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound
}
