package directory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplekyc/internal/core/domain"
)

func fakeDirectory(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Username != "emilys" || creds.Password != "emilyspass" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 1, "accessToken": "dir-token"})
	})
	mux.HandleFunc("/user/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer dir-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(Profile{ID: 1, Username: "emilys", FirstName: "Emily", Role: "admin"})
	})
	mux.HandleFunc("/users/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Profile{
			ID: 1, Username: "emilys", FirstName: "Emily", LastName: "Johnson",
			MaidenName: "Smith", BirthDate: "1996-5-30", Age: 29,
			Address: &Address{City: "Phoenix", Country: "United States"},
		})
	})
	mux.HandleFunc("/users/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Listing{
			Users: []Profile{{ID: 1, Username: "emilys"}, {ID: 2, Username: "michaelw"}},
			Total: 2,
		})
	})

	return httptest.NewServer(mux)
}

func TestLogin(t *testing.T) {
	srv := fakeDirectory(t)
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	result, err := client.Login("emilys", "emilyspass")
	require.NoError(t, err)
	assert.Equal(t, "dir-token", result.AccessToken)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := fakeDirectory(t)
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	_, err := client.Login("emilys", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	srv := fakeDirectory(t)
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	profile, err := client.Me("dir-token")
	require.NoError(t, err)
	assert.Equal(t, "emilys", profile.Username)
	assert.Equal(t, "admin", profile.Role)

	_, err = client.Me("stale")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetUser(t *testing.T) {
	srv := fakeDirectory(t)
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	profile, err := client.GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, "Smith", profile.MaidenName)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "Phoenix", profile.Address.City)

	_, err = client.GetUser(404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserRetriesOutageOnce(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Profile{ID: 1, Username: "emilys"})
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	profile, err := client.GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, "emilys", profile.Username)
	assert.Equal(t, 2, calls)
}

func TestGetUserDoesNotRetryNotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	_, err := client.GetUser(1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, 1, calls)
}

func TestListUsers(t *testing.T) {
	srv := fakeDirectory(t)
	defer srv.Close()
	client := NewClient(srv.URL, 10)

	users, err := client.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "michaelw", users[1].Username)
}

func TestDirectoryDownIsAnOutage(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // connection refused from here on
	client := NewClient(srv.URL, 1)

	_, err := client.Login("emilys", "emilyspass")
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
}
