package controllers

import "MediConsult/config"

var cfg *config.Config

// Init hands the controllers the process configuration (cookie security,
// upload directory). Called once from main.
func Init(c *config.Config) {
	cfg = c
}
