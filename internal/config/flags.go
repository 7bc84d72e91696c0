package config

import (
	"flag"
	"os"

	"github.com/BAWimmer/lockbox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the local database file
//	-hardened   use the hardened storage codec
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-hardened"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.BoolVar(&cfg.HardenedCodec, "hardened", cfg.HardenedCodec, "use the hardened storage codec")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
