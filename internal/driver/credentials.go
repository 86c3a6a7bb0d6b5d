// File: internal/driver/credentials.go
package driver

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"warwalk/internal/portal"
)

// Environment variables that short-circuit the credential prompts. A .env
// file in the working directory is honored too, so repeated runs against a
// test account do not need retyping.
const (
	envUsername = "WARWALK_USERNAME"
	envPassword = "WARWALK_PASSWORD"
)

type credentials struct {
	username string
	password string
}

// collectCredentials gathers the sign-in identity from the environment or,
// failing that, from the operator. The password prompt is masked. An empty
// answer means the operator chose not to proceed.
func (d *Driver) collectCredentials() (credentials, error) {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	creds := credentials{
		username: os.Getenv(envUsername),
		password: os.Getenv(envPassword),
	}

	var err error
	if creds.username == "" {
		creds.username, err = d.prompt.Line("Username")
		if err != nil {
			return credentials{}, fmt.Errorf("%w: %v", portal.ErrDeclined, err)
		}
	}
	if creds.password == "" {
		creds.password, err = d.prompt.Secret("Password")
		if err != nil {
			return credentials{}, fmt.Errorf("%w: %v", portal.ErrDeclined, err)
		}
	}

	if creds.username == "" || creds.password == "" {
		return credentials{}, fmt.Errorf("%w: no credentials provided", portal.ErrDeclined)
	}
	return creds, nil
}
