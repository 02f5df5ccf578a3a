package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userJSON struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func TestUserHandler_GetAll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().WithEmail("a@example.com").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().WithEmail("b@example.com").Build(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/users"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var users []userJSON
	testutil.AssertJSONResponse(t, resp, &users)
	assert.Len(t, users, 2)
}

func TestUserHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	t.Run("existing user", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/users/" + user.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		var got userJSON
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, user.ID.String(), got.ID)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/users/" + uuid.New().String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestUserHandler_Profile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	t.Run("requires a session", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, ts.APIURL("/users/profile/"+user.ID.String()), nil, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("with a session", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, ts.APIURL("/users/profile/"+user.ID.String()), nil, cookie)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var got userJSON
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, user.ID.String(), got.ID)
	})
}

func TestUserHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	other, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	t.Run("self update", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPut, ts.APIURL("/users/"+user.ID.String()), map[string]string{
			"fullName": "Updated Name",
		}, cookie)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var got userJSON
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, "Updated Name", got.FullName)
	})

	t.Run("updating another user is forbidden", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPut, ts.APIURL("/users/"+other.ID.String()), map[string]string{
			"fullName": "Hijacked",
		}, cookie)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("without a session", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPut, ts.APIURL("/users/"+user.ID.String()), map[string]string{
			"fullName": "Nobody",
		}, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("email conflict", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPut, ts.APIURL("/users/"+user.ID.String()), map[string]string{
			"email": other.Email,
		}, cookie)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}
