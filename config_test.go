// imagedate: tests for option loading
package main

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadOptions(t *testing.T) {
	v := viper.New()
	v.Set("recursive", true)
	v.Set("format", "json")
	v.Set("db", "/tmp/ledger.db")
	v.Set("workers", 8)

	opts, err := loadOptions(v)
	if err != nil {
		t.Fatalf("loadOptions failed: %v", err)
	}
	if !opts.Recursive || opts.Format != "json" || opts.DBPath != "/tmp/ledger.db" || opts.Workers != 8 {
		t.Errorf("Unexpected options: %+v", opts)
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := loadOptions(viper.New())
	if err != nil {
		t.Fatalf("loadOptions failed: %v", err)
	}
	if opts.Format != "text" {
		t.Errorf("Expected text format by default, got %q", opts.Format)
	}
	if opts.Workers != 1 {
		t.Errorf("Workers should be clamped to 1, got %d", opts.Workers)
	}
}

func TestLoadOptionsRejectsUnknownFormat(t *testing.T) {
	v := viper.New()
	v.Set("format", "xml")
	if _, err := loadOptions(v); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestLoadOptionsFromEnv(t *testing.T) {
	t.Setenv("IMAGEDATE_WORKERS", "3")
	v := viper.New()
	v.SetEnvPrefix("IMAGEDATE")
	v.AutomaticEnv()

	opts, err := loadOptions(v)
	if err != nil {
		t.Fatalf("loadOptions failed: %v", err)
	}
	if opts.Workers != 3 {
		t.Errorf("Expected workers from environment, got %d", opts.Workers)
	}
}
