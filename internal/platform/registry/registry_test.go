package registry

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	ggcrregistry "github.com/google/go-containerregistry/pkg/registry"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want string
	}{
		{"myreg.azurecr.io/app:v1", "myreg.azurecr.io"},
		{"acadeploy-app:latest", "index.docker.io"},
		{"ghcr.io/org/app@sha256:" + strings.Repeat("a", 64), "ghcr.io"},
		{"localhost:5000/app", "localhost:5000"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			got, err := Host(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Host("UPPER/Case:tag")
	require.Error(t, err)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, Matches("*.azurecr.io", "myreg.azurecr.io/app:v1"))
	assert.True(t, Matches("*.AzureCR.io", "myreg.azurecr.io/app:v1"))
	assert.False(t, Matches("*.azurecr.io", "acadeploy-app:latest"))
	assert.False(t, Matches("*.azurecr.io", "ghcr.io/org/app:v1"))
	assert.False(t, Matches("", "myreg.azurecr.io/app:v1"))
	assert.False(t, Matches("[", "myreg.azurecr.io/app:v1"))
}

func TestAuthenticator_ExplicitCredentials(t *testing.T) {
	t.Parallel()

	auth, err := Authenticator("myreg.azurecr.io/app:v1", Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)

	cfg, err := auth.Authorization()
	require.NoError(t, err)
	assert.Equal(t, &authn.AuthConfig{Username: "u", Password: "p"}, cfg)
}

func TestCredentials_IsSet(t *testing.T) {
	t.Parallel()

	assert.True(t, Credentials{Username: "u", Password: "p"}.IsSet())
	assert.False(t, Credentials{Username: "u"}.IsSet())
	assert.False(t, Credentials{}.IsSet())
}

func TestExistsAndDelete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(ggcrregistry.New())
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	ref := host + "/acadeploy/app:v1"
	creds := Credentials{Username: "u", Password: "p"}
	ctx := context.Background()

	img, err := random.Image(256, 1)
	require.NoError(t, err)
	tag, err := name.ParseReference(ref)
	require.NoError(t, err)
	require.NoError(t, remote.Write(tag, img))

	exists, err := Exists(ctx, ref, creds)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, Delete(ctx, ref, creds))

	exists, err = Exists(ctx, ref, creds)
	require.NoError(t, err)
	assert.False(t, exists)

	// Already gone.
	require.NoError(t, Delete(ctx, ref, creds))
}
