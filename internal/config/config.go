package config

import "time"

type ServerModeType string

const (
	ServerModeDev  ServerModeType = "dev"
	ServerModeProd ServerModeType = "prod"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Client
type Configuration struct {
	Server     Server `debugmap:"visible"`
	Client     Client `debugmap:"visible"`
	DataFolder string `debugmap:"visible"`

	// Log
	LogFormat string `debugmap:"visible" default:"console"`
	LogLevel  string `debugmap:"visible" default:"info"`
}

// Server configures the backend started by the serve command.
type Server struct {
	HTTPPort    int    `debugmap:"visible" default:"8080"`
	ServerMode  string `debugmap:"visible" default:"dev"`
	ProviderURL string `debugmap:"visible"`
}

// Client configures how the commands reach the backend. When BackendURL is
// empty the commands open the local store.
type Client struct {
	BackendURL string        `debugmap:"visible"`
	Timeout    time.Duration `debugmap:"visible" default:"30s"`
	NumWorkers int           `debugmap:"visible" default:"2"`
}
