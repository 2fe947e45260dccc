package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/supportportal/internal/flagx"
)

// fromFlags applies the short command-line flags:
//
//	-a  backend API base URL
//	-d  local session database file
//	-l  log level
func fromFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend API base URL")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "local session database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	return fs.Parse(flagx.Pick(args, "a", "d", "l"))
}
