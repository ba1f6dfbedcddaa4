// Package conf holds the bootstrap configuration scanned from configs/*.yaml.
package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of the configuration tree.
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Auth   *Auth   `json:"auth"`
}

type Server struct {
	Http *Server_HTTP `json:"http"`
	Grpc *Server_GRPC `json:"grpc"`
}

type Server_HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

type Server_GRPC struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

type Data struct {
	Database *Data_Database `json:"database"`
	Mongo    *Data_Mongo    `json:"mongo"`
	Redis    *Data_Redis    `json:"redis"`
}

// Data_Database selects the movie store. Driver is "mongo" (default) or
// "postgres"; Source is only read for postgres.
type Data_Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Data_Mongo struct {
	Uri            string   `json:"uri"`
	Database       string   `json:"database"`
	Collection     string   `json:"collection"`
	ConnectTimeout Duration `json:"connect_timeout"`
}

// Data_Redis is optional. An empty Addr disables caching and keeps sessions
// in process.
type Data_Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	Db           int      `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Auth configures the single account allowed through the login gate.
type Auth struct {
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	PasswordHash string   `json:"password_hash"`
	CookieName   string   `json:"cookie_name"`
	CookieSecure bool     `json:"cookie_secure"`
	SessionTtl   Duration `json:"session_ttl"`
	LoginRate    float64  `json:"login_rate"`
	LoginBurst   int      `json:"login_burst"`
}

// Duration decodes Go duration strings ("1s", "150ms") as well as plain
// numbers of seconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value * float64(time.Second))
	case string:
		if value == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	case nil:
		d.Duration = 0
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// AsDuration mirrors durationpb so call sites read the same as with
// generated config.
func (d Duration) AsDuration() time.Duration {
	return d.Duration
}
