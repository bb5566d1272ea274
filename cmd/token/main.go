// token mints a dev access token for exercising the authenticated API,
// pairing with cmd/seed: mint a token for the seeded admin and call the
// endpoints with it. Requires JWT_PRIVATE_KEY.
package main

import (
	"flag"
	"fmt"
	"os"

	"callmonitor/internal/config"
	"callmonitor/internal/security"
)

func main() {
	userID := flag.String("user", "", "Subject user id (e.g. the seeded dev user)")
	orgID := flag.String("org", "", "Organization id the token is scoped to")
	flag.Parse()

	if *userID == "" || *orgID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <user-id> -org <org-id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.JWTPrivateKey == "" {
		fmt.Fprintln(os.Stderr, "JWT_PRIVATE_KEY is not set; create a .env from .env.example or set JWT_PRIVATE_KEY")
		os.Exit(1)
	}

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		fmt.Fprintln(os.Stderr, "JWT_PRIVATE_KEY:", err)
		os.Exit(1)
	}

	tokens := security.NewTokenProvider(privateKey, privateKey.Public(), cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	token, jti, expiresAt, err := tokens.IssueAccess(*userID, *orgID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "jti=%s expires=%s\n", jti, expiresAt.Format("2006-01-02T15:04:05Z07:00"))
}
