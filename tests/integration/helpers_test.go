//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/abijith/user-directory/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Profile mirrors the API's profile response shape.
type Profile struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Phone            string         `json:"phone"`
	Enabled          bool           `json:"enabled"`
	Roles            []string       `json:"roles"`
	CustomAttributes map[string]any `json:"custom_attributes"`
}

// PagedUsers mirrors the API's page envelope.
type PagedUsers struct {
	Users         []Profile `json:"users"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int       `json:"total_elements"`
	TotalPages    int       `json:"total_pages"`
}

type userOption func(map[string]any)

func withName(first, last string) userOption {
	return func(m map[string]any) {
		m["first_name"] = first
		m["last_name"] = last
	}
}

func withPhone(phone string) userOption {
	return func(m map[string]any) {
		m["phone"] = phone
	}
}

func withAttributes(attrs map[string]any) userOption {
	return func(m map[string]any) {
		m["custom_attributes"] = attrs
	}
}

// createTestUser creates a user and returns its id, parsed from the
// Location header. Deactivates the user on cleanup so it doesn't leak into
// list/search assertions of other tests.
func createTestUser(t *testing.T, client *testutil.Client, email string, opts ...userOption) string {
	t.Helper()

	payload := map[string]any{
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
	}
	for _, opt := range opts {
		opt(payload)
	}

	resp, err := client.POST("/users", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/users/"), "unexpected Location header: %s", location)
	id := strings.TrimPrefix(location, "/users/")

	t.Cleanup(func() {
		resp, err := client.WithoutValidation().PATCH("/users/"+id+"/deactivate", nil)
		if err == nil {
			resp.Body.Close()
		}
	})

	return id
}

func getProfile(t *testing.T, client *testutil.Client, id string) Profile {
	t.Helper()

	resp, err := client.GET("/users/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile Profile
	testutil.DecodeJSON(t, resp, &profile)
	return profile
}

func deactivateUser(t *testing.T, client *testutil.Client, id string) {
	t.Helper()

	resp, err := client.PATCH("/users/"+id+"/deactivate", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}
