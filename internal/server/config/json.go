package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/windhans/reels/internal/flagx"
	"github.com/windhans/reels/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. It uses timex.Duration for
// interval fields so both "5s" strings and integer nanoseconds parse, and
// pointers so absent keys leave the layered value untouched.
type JsonConfig struct {
	EndpointAddr    *string         `json:"endpoint_addr"`
	DatabaseDSN     *string         `json:"database_dsn"`
	SecureCookies   *bool           `json:"secure_cookies"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	MediaBackend    *string         `json:"media_backend"`
	MediaMaxWidth   *int            `json:"media_max_width"`
	MediaQuality    *string         `json:"media_quality"`
	S3RootUser      *string         `json:"s3_root_user"`
	S3RootPassword  *string         `json:"s3_root_password"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3Region        *string         `json:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into cfg. Without the flag nothing is loaded. The file
// must read and parse cleanly; a broken config is a startup failure.
func parseJson(cfg *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		cfg.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		cfg.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecureCookies != nil {
		cfg.SecureCookies = *c.SecureCookies
	}
	if c.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	}
	if c.MediaBackend != nil {
		cfg.MediaBackend = *c.MediaBackend
	}
	if c.MediaMaxWidth != nil {
		cfg.MediaMaxWidth = *c.MediaMaxWidth
	}
	if c.MediaQuality != nil {
		cfg.MediaQuality = *c.MediaQuality
	}
	if c.S3RootUser != nil {
		cfg.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		cfg.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		cfg.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		cfg.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *c.S3BaseEndpoint
	}
}
