package auth

import (
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"

	"github.com/travelwiz/travelwiz/config"
)

// RegisterOAuthProviders wires the configured OAuth providers into goth.
// Providers without credentials are skipped, so OAuth sign-in is a
// configuration choice rather than a hard requirement.
func RegisterOAuthProviders(cfg *config.Config) {
	var providers []goth.Provider

	if g := cfg.OAuth.Google; g.Key != "" && g.Secret != "" {
		providers = append(providers, google.New(g.Key, g.Secret, g.CallbackURL, "email", "profile"))
	}

	if len(providers) > 0 {
		goth.UseProviders(providers...)
	}
}
