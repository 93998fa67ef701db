package ocl

import "time"

// Config holds the backend connection settings.
type Config struct {
	BaseURL      string        `env:"OCL_BACKEND_URL" envDefault:"http://localhost:8080/ws/rest/v1"` // BaseURL is the REST root the subscription resource lives under.
	Token        string        `env:"OCL_BACKEND_TOKEN"`                                             // Token is an optional bearer token for the backend.
	Timeout      time.Duration `env:"OCL_BACKEND_TIMEOUT" envDefault:"30s"`                          // Timeout bounds every request made by the client.
	ResourcePath string        `env:"OCL_RESOURCE_PATH" envDefault:"/openconceptlab/subscription"`   // ResourcePath is appended to BaseURL.
}
