package services

import (
	"MediConsult/auth"
	"MediConsult/config"
)

var (
	cfg    *config.Config
	tokens *auth.TokenManager
)

// Init hands the service layer its process-wide collaborators. Called once
// from main before any route is served.
func Init(c *config.Config, tm *auth.TokenManager) {
	cfg = c
	tokens = tm
}
