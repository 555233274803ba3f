package config

import (
    "os"

    "github.com/hashicorp/go-hclog"
)

// NewLogger builds the root logger from LOG_LEVEL and LOG_JSON.  Unknown
// levels fall back to info.
func NewLogger(name string, c Config) hclog.Logger {
    level := hclog.LevelFromString(c.LogLevel)
    if level == hclog.NoLevel {
        level = hclog.Info
    }
    return hclog.New(&hclog.LoggerOptions{
        Name:       name,
        Level:      level,
        JSONFormat: c.LogJSON,
        Output:     os.Stderr,
    })
}
