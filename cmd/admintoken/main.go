// Command admintoken mints an admin JWT for the settings endpoints, signed
// with the JWT_SECRET the API server loads.
package main

import (
	"flag"
	"fmt"
	"os"

	"paraguay-shipping/config"
	"paraguay-shipping/internal/domain"
	"paraguay-shipping/pkg/logger"
	"paraguay-shipping/pkg/utils"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	subject := flag.String("sub", "merchant-admin", "token subject recorded in request logs")
	expiry := flag.Duration("expiry", cfg.AdminTokenExpiry, "token lifetime")
	flag.Parse()

	if *expiry <= 0 {
		log.Fatal().Dur("expiry", *expiry).Msg("expiry must be positive")
	}

	utils.SetSecret(cfg.JWTSecret)
	token, err := utils.GenerateJWT(*subject, domain.RoleAdmin, *expiry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to sign admin token")
	}

	// stdout carries only the token so it can be captured by scripts
	fmt.Fprintln(os.Stdout, token)
}
