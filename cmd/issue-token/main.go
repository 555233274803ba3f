// Command issue-token prints an access token signed with JWT_SECRET.  With
// the default role the token is accepted on movie and showtime writes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/utils"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	role := flag.String("role", middleware.RoleOwner, "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ACCESS_TOKEN_TTL_MIN minutes)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		cfg, err = config.FromEnvFor(config.StoreMemory)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *ttl <= 0 {
		*ttl = time.Duration(cfg.AccessTTLMin) * time.Minute
	}

	tok, err := utils.NewAccessToken(cfg.JWTSecret, *subject, *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}
	fmt.Println(tok.Token)
	fmt.Fprintln(os.Stderr, "expires", tok.Exp.Format(time.RFC3339))
}
