package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/supportportal/internal/flagx"
)

// fromJSON overlays cfg with the file named by -c or -config. Keys that are
// missing or empty in the file keep their current value.
func fromJSON(cfg *Config, args []string) error {
	path := flagx.String(args, "c", "config")
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file Config
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for dst, v := range map[*string]string{
		&cfg.APIURL:      file.APIURL,
		&cfg.StorePath:   file.StorePath,
		&cfg.LogLevel:    file.LogLevel,
		&cfg.LogFormat:   file.LogFormat,
		&cfg.TokenHeader: file.TokenHeader,
	} {
		if v != "" {
			*dst = v
		}
	}
	return nil
}
