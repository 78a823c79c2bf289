// Command apitoken mints a bearer token for /make_call and /api/appointments.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"clinicvoice/config"
	"clinicvoice/utils"

	"github.com/alecthomas/kong"
)

var cli struct {
	Subject string        `help:"Name of the API client the token is issued to" default:"dashboard"`
	TTL     time.Duration `help:"How long the token stays valid" default:"720h"`
	Secret  string        `help:"Signing secret; defaults to API_JWT_SECRET from the service config" default:""`
}

func issue(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("no signing secret: set API_JWT_SECRET or pass --secret")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}
	return utils.GenerateToken(secret, subject, ttl)
}

func main() {
	kong.Parse(&cli, kong.Description("Issue an API token for the clinic voice service."))

	secret := cli.Secret
	if secret == "" {
		config.LoadConfig()
		secret = config.AppConfig.APIJWTSecret
	}

	token, err := issue(secret, cli.Subject, cli.TTL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "apitoken:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
