//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/abijith/user-directory/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchUsers(t *testing.T, client *testutil.Client, term string) []Profile {
	t.Helper()

	resp, err := client.GET("/users/search?query=" + url.QueryEscape(term))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []Profile
	testutil.DecodeJSON(t, resp, &users)
	return users
}

// searchToken returns a marker unlikely to collide with data left behind by
// other tests sharing the database.
func searchToken() string {
	return "tok" + uuid.NewString()[:8]
}

func TestSearch_MatchesAcrossFields(t *testing.T) {
	client := newTestClient(t)
	token := searchToken()

	byFirst := createTestUser(t, client, testutil.RandomEmail("search-f"), withName("Ann"+token, "Smith"))
	byLast := createTestUser(t, client, testutil.RandomEmail("search-l"), withName("Bob", "Jones"+token))
	byEmail := createTestUser(t, client, "carol-"+token+"@example.com", withName("Carol", "White"))
	createTestUser(t, client, testutil.RandomEmail("search-none"), withName("Dave", "Brown"))

	users := searchUsers(t, client, token)
	require.Len(t, users, 3)

	ids := make(map[string]bool, len(users))
	for _, u := range users {
		ids[u.ID] = true
	}
	assert.True(t, ids[byFirst])
	assert.True(t, ids[byLast])
	assert.True(t, ids[byEmail])
}

func TestSearch_DeduplicatesMultiFieldMatch(t *testing.T) {
	client := newTestClient(t)
	token := searchToken()

	id := createTestUser(t, client, token+"@example.com", withName(token, token))

	users := searchUsers(t, client, token)
	require.Len(t, users, 1)
	assert.Equal(t, id, users[0].ID)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	client := newTestClient(t)
	token := searchToken()

	id := createTestUser(t, client, testutil.RandomEmail("search-case"), withName("Eve"+token, "Adams"))

	users := searchUsers(t, client, "TOK"+token[3:])
	require.Len(t, users, 1)
	assert.Equal(t, id, users[0].ID)
}

func TestSearch_ExcludesDeactivated(t *testing.T) {
	client := newTestClient(t)
	token := searchToken()

	id := createTestUser(t, client, testutil.RandomEmail("search-deact"), withName("Frank"+token, "Gray"))
	deactivateUser(t, client, id)

	assert.Empty(t, searchUsers(t, client, token))
}

func TestSearch_EmptyQueryReturnsAllEnabled(t *testing.T) {
	client := newTestClient(t)
	id := createTestUser(t, client, testutil.RandomEmail("search-empty"))

	users := searchUsers(t, client, "")
	found := false
	for _, u := range users {
		assert.True(t, u.Enabled)
		if u.ID == id {
			found = true
		}
	}
	assert.True(t, found)
}
