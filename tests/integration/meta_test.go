//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/abijith/user-directory/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeta_Healthz(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", testutil.ReadBody(t, resp))
}

func TestMeta_Readyz(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/readyz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestMeta_Version(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/version")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info map[string]string
	testutil.DecodeJSON(t, resp, &info)
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit")
}

func TestMeta_Docs(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/docs")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body := testutil.ReadBody(t, resp)
	assert.True(t, strings.Contains(body, "/api/openapi.yaml"))
}
