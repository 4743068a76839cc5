package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkorotkov/clipstream/internal/flagx"
	"github.com/mkorotkov/clipstream/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	HistoryDBPath  string         `json:"history_db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file given via the
// -c/-config flags into the provided Config. If no flag is set, nothing is
// loaded.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerURL = c.ServerURL
	config.HistoryDBPath = c.HistoryDBPath
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
