package services

import (
	"simplekyc/internal/adapters/directory"
)

// DirectoryClient is the slice of the upstream directory the services
// depend on. The concrete client lives in adapters/directory; tests
// substitute an in-memory fake.
type DirectoryClient interface {
	Login(username, password string) (*directory.LoginResult, error)
	Me(accessToken string) (*directory.Profile, error)
	GetUser(id int) (*directory.Profile, error)
	ListUsers() ([]directory.Profile, error)
}
