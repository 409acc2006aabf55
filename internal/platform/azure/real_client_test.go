package azure

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/config"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// cannedTransport answers every request with the same status and body and
// remembers the requests it saw.
type cannedTransport struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []*http.Request
}

func (c *cannedTransport) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return &http.Response{
		StatusCode: c.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
		Request:    req,
	}, nil
}

func newTestClient(t *testing.T, transport *cannedTransport) *RealClient {
	t.Helper()
	c, err := NewRealClient("00000000-0000-0000-0000-000000000000", fakeCredential{},
		WithTimeouts(&config.Timeouts{Create: time.Minute, Update: time.Minute, Delete: time.Minute, Read: time.Minute}),
		WithClientOptions(&arm.ClientOptions{
			ClientOptions: policy.ClientOptions{
				Transport: transport,
				Retry:     policy.RetryOptions{MaxRetries: -1},
			},
		}),
	)
	require.NoError(t, err)
	return c
}

func TestNewRealClient_RequiresSubscription(t *testing.T) {
	t.Parallel()

	_, err := NewRealClient("", fakeCredential{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription ID is required")
}

func TestResourceGroupExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"exists", http.StatusNoContent, true},
		{"absent", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			transport := &cannedTransport{status: tt.status}
			c := newTestClient(t, transport)

			exists, err := c.ResourceGroupExists(context.Background(), "g1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)

			require.Len(t, transport.requests, 1)
			assert.Equal(t, http.MethodHead, transport.requests[0].Method)
			assert.Contains(t, transport.requests[0].URL.Path, "/resourcegroups/g1")
		})
	}
}

func TestGetWorkspace_NotFoundIsNil(t *testing.T) {
	t.Parallel()

	transport := &cannedTransport{
		status: http.StatusNotFound,
		body:   `{"error":{"code":"ResourceNotFound","message":"not found"}}`,
	}
	c := newTestClient(t, transport)

	ws, err := c.GetWorkspace(context.Background(), "g1", "e1-logs")
	require.NoError(t, err)
	assert.Nil(t, ws)
}

func TestGetWorkspace_Found(t *testing.T) {
	t.Parallel()

	transport := &cannedTransport{
		status: http.StatusOK,
		body:   `{"id":"/subscriptions/x/resourceGroups/g1/providers/Microsoft.OperationalInsights/workspaces/e1-logs","name":"e1-logs","properties":{"customerId":"cust-123"}}`,
	}
	c := newTestClient(t, transport)

	ws, err := c.GetWorkspace(context.Background(), "g1", "e1-logs")
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, "e1-logs", ws.Name)
	assert.Equal(t, "cust-123", ws.CustomerID)
}

func TestGetContainerApp_ServerErrorIsReturned(t *testing.T) {
	t.Parallel()

	transport := &cannedTransport{
		status: http.StatusForbidden,
		body:   `{"error":{"code":"AuthorizationFailed","message":"denied"}}`,
	}
	c := newTestClient(t, transport)

	app, err := c.GetContainerApp(context.Background(), "g1", "a1")
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Equal(t, "AuthorizationFailed", ErrorCode(err))
	assert.Contains(t, err.Error(), `failed to get container app "a1"`)
}
