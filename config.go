// imagedate: configuration from flags, config file and environment
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Options holds the settings of one run
type Options struct {
	Recursive   bool
	All         bool
	Format      string
	DBPath      string
	Workers     int
	Interactive bool
	Verbose     bool
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".imagedate"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match IMAGEDATE_*
	viper.SetEnvPrefix("IMAGEDATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadOptions collects the effective settings after flags and config are merged
func loadOptions(v *viper.Viper) (Options, error) {
	opts := Options{
		Recursive:   v.GetBool("recursive"),
		All:         v.GetBool("all"),
		Format:      v.GetString("format"),
		DBPath:      v.GetString("db"),
		Workers:     v.GetInt("workers"),
		Interactive: v.GetBool("interactive"),
		Verbose:     v.GetBool("verbose"),
	}
	switch opts.Format {
	case "":
		opts.Format = "text"
	case "text", "json":
	default:
		return opts, fmt.Errorf("unknown output format %q (want text or json)", opts.Format)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return opts, nil
}
