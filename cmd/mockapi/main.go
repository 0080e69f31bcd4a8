// Command mockapi serves the canned society backend for local development,
// so the dashboard can run without the real API.
package main

import (
	"net/http"
	"os"

	"github.com/societyhub/dashboard/internal/mockapi"
	"github.com/societyhub/dashboard/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{Pretty: true})

	port := os.Getenv("MOCKAPI_PORT")
	if port == "" {
		port = "8000"
	}

	log.Info().Str("port", port).Msg("mock society backend listening")
	log.Info().
		Str("admin", mockapi.AdminEmail).
		Str("developer", mockapi.DeveloperEmail).
		Str("pending", mockapi.PendingEmail).
		Msg("seeded accounts, password " + mockapi.AdminPassword)

	if err := http.ListenAndServe(":"+port, mockapi.New()); err != nil {
		log.Fatal().Err(err).Msg("mock backend stopped")
	}
}
