// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads report settings from an optional config file, the environment
// and command line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment variables, e.g., SERVERREPORT_INPUT
	EnvPrefix = "SERVERREPORT"
	// DefaultName is the config file looked up in the working directory
	DefaultName = "serverreport"
)

// Config holds the settings of a build run
type Config struct {
	Input        string   `mapstructure:"input"`
	Output       string   `mapstructure:"output"`
	Format       []string `mapstructure:"format"`
	SummarySheet string   `mapstructure:"summary_sheet"`
	Duplicates   string   `mapstructure:"duplicates"`
	DiskAlert    string   `mapstructure:"disk_alert"`
	Inventory    string   `mapstructure:"inventory"`
	MetricsFile  string   `mapstructure:"metrics_file"`
	Progress     bool     `mapstructure:"progress"`
}

// Setup points v at cfgFile, or at serverreport.yaml in the working directory when
// cfgFile is empty, and enables environment overrides. A missing default config file
// is not an error.
func Setup(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "failed to read config")
	}
	return nil
}

// Load decodes the settings known to v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Input:      "servers_info.txt",
		Output:     "server-report.xlsx",
		Format:     []string{"xlsx"},
		Duplicates: "suffix",
		Progress:   true,
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return cfg, nil
}
