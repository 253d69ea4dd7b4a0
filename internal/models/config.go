package models

import (
	"path"

	"github.com/kardianos/osext"
)

// AppConfig is the application's main configuration structure
type AppConfig struct {
	// The directory where the kiosk stores its roster snapshot - defaults to the /data subdirectory of the folder the
	// executable resides in
	DataDir string `json:"dataDir"`
	// The IP address to listen at - including the port number
	ListenAddress string `json:"listenAddress"`
	// Access to the tally server
	Upstream UpstreamConfig `json:"upstream"`
	// The celebration shown after a successful tally
	Celebration CelebrationConfig `json:"celebration"`
}

// UpstreamConfig describes how to reach the tally server
type UpstreamConfig struct {
	// Base URL all tally and void requests are resolved against
	BaseURL string `json:"baseURL"`
	// CSRF token used when the browser does not provide one itself
	CSRFToken string `json:"csrfToken"`
	// Session cookie sent along with every request, as "name=value"
	SessionCookie string `json:"sessionCookie"`
	// API key sent as bearer token, if the server requires one
	APIKey string `json:"apiKey"`
	// Request timeout in milliseconds
	TimeoutMs uint `json:"timeoutMs"`
}

// CelebrationConfig configures the celebration display
type CelebrationConfig struct {
	// How long the celebration is visible, in milliseconds
	DurationMs uint `json:"durationMs"`
}

// GetDefaultConfig returns the default configuration values for the application
func GetDefaultConfig() (*AppConfig, error) {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		return nil, err
	}
	return &AppConfig{
		DataDir:       path.Join(execDir, "data"),
		ListenAddress: ":3000",
		Upstream: UpstreamConfig{
			BaseURL:   "http://127.0.0.1:5000",
			TimeoutMs: 10000,
		},
		Celebration: CelebrationConfig{
			DurationMs: 1200,
		},
	}, nil
}
