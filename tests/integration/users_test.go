//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/abijith/user-directory/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func TestUsers_CreateAndFetch(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("create")

	id := createTestUser(t, client, email,
		withName("Alice", "Smith"),
		withPhone("555-0100"),
		withAttributes(map[string]any{"team": "platform", "seat": float64(42)}),
	)

	profile := getProfile(t, client, id)
	assert.Equal(t, email, profile.Email)
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "Smith", profile.LastName)
	assert.Equal(t, "555-0100", profile.Phone)
	assert.True(t, profile.Enabled)
	assert.Equal(t, []string{"user"}, profile.Roles)
	assert.Equal(t, "platform", profile.CustomAttributes["team"])
	assert.Equal(t, float64(42), profile.CustomAttributes["seat"])

	// Same record through the email lookup.
	resp, err := client.GET("/users/email/" + email)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var byEmail Profile
	testutil.DecodeJSON(t, resp, &byEmail)
	assert.Equal(t, id, byEmail.ID)
}

func TestUsers_CreateDuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("dup")
	createTestUser(t, client, email)

	resp, err := client.POST("/users", map[string]any{
		"email":      email,
		"first_name": "Other",
		"last_name":  "Person",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Equal(t, "Bad Request", body.Error)
	assert.Equal(t, "email already in use", body.Message)
	assert.Equal(t, "/users", body.Path)
	assert.False(t, body.Timestamp.IsZero())
}

func TestUsers_CreateMissingFields(t *testing.T) {
	client := newTestClient(t).WithoutValidation()

	resp, err := client.POST("/users", map[string]any{
		"email": testutil.RandomEmail("invalid"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_GetUnknown(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/users/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body errorBody
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "/users/00000000-0000-0000-0000-000000000000", body.Path)
}

func TestUsers_MalformedID(t *testing.T) {
	client := newTestClient(t)

	// ids are UUID typed in the store; a malformed id must read as not found,
	// never as a server error.
	resp, err := client.GET("/users/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.PUT("/users/not-a-uuid", map[string]any{
		"first_name": "A",
		"last_name":  "B",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	for _, action := range []string{"deactivate", "reactivate"} {
		resp, err = client.PATCH("/users/not-a-uuid/"+action, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, action)
		resp.Body.Close()
	}
}

func TestUsers_Update(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("update")
	id := createTestUser(t, client, email, withName("Alice", "Smith"))

	resp, err := client.PUT("/users/"+id, map[string]any{
		"first_name":        "Alicia",
		"last_name":         "Smythe",
		"phone":             "555-0199",
		"custom_attributes": map[string]any{"team": "infra"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	profile := getProfile(t, client, id)
	assert.Equal(t, "Alicia", profile.FirstName)
	assert.Equal(t, "Smythe", profile.LastName)
	assert.Equal(t, "555-0199", profile.Phone)
	assert.Equal(t, "infra", profile.CustomAttributes["team"])

	// Identity and policy fields survive updates untouched.
	assert.Equal(t, email, profile.Email)
	assert.True(t, profile.Enabled)
	assert.Equal(t, []string{"user"}, profile.Roles)
}

func TestUsers_UpdateUnknown(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.PUT("/users/00000000-0000-0000-0000-000000000000", map[string]any{
		"first_name": "A",
		"last_name":  "B",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_UpdateDeactivated(t *testing.T) {
	client := newTestClient(t)
	id := createTestUser(t, client, testutil.RandomEmail("upd-deact"))
	deactivateUser(t, client, id)

	resp, err := client.PUT("/users/"+id, map[string]any{
		"first_name": "A",
		"last_name":  "B",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
