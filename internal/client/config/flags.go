package config

import (
	"flag"
	"os"
	"time"

	"inkwell/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the journal API
//	-r string   region of the identity provider's user pool
//	-p string   user pool identifier
//	-k string   user pool app client identifier
//	-d string   path to the local session database
//	-t int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-p", "-k", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the journal API")
	fs.StringVar(&cfg.AWSRegion, "r", cfg.AWSRegion, "identity provider region")
	fs.StringVar(&cfg.UserPoolID, "p", cfg.UserPoolID, "user pool identifier")
	fs.StringVar(&cfg.UserPoolClientID, "k", cfg.UserPoolClientID, "user pool client identifier")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
