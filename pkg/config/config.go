// Copyright 2025 the mirrorrc authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🌐 ShareConfig describes the authenticated network destination used in
// alternate-credential mode.
type ShareConfig struct {
	Remote      string   `json:"remote" yaml:"remote" hcl:"remote"`
	MountPoints []string `json:"mount_points" yaml:"mount_points" hcl:"mount_points"`
}

// ✉️ NotifyConfig describes the notification transport.
type NotifyConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled" hcl:"enabled"`
	SMTPHost string   `json:"smtp_host" yaml:"smtp_host" hcl:"smtp_host"`
	SMTPPort int      `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" hcl:"smtp_port,optional"`
	From     string   `json:"from" yaml:"from" hcl:"from"`
	To       []string `json:"to" yaml:"to" hcl:"to"`
}

// 📚 Config is the per-deployment configuration: where the folder list lives,
// where the mirror goes, what gets excluded, and how the run reports itself.
type Config struct {
	FolderList      string        `json:"folder_list" yaml:"folder_list" hcl:"folder_list"`
	DestinationRoot string        `json:"destination_root,omitempty" yaml:"destination_root,omitempty" hcl:"destination_root,optional"`
	LogDir          string        `json:"log_dir,omitempty" yaml:"log_dir,omitempty" hcl:"log_dir,optional"`
	CopyTool        string        `json:"copy_tool,omitempty" yaml:"copy_tool,omitempty" hcl:"copy_tool,optional"`
	Concurrency     int           `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
	ExcludeFiles    []string      `json:"exclude_files,omitempty" yaml:"exclude_files,omitempty" hcl:"exclude_files,optional"`
	ExcludeDirs     []string      `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty" hcl:"exclude_dirs,optional"`
	Share           *ShareConfig  `json:"share,omitempty" yaml:"share,omitempty" hcl:"share,block"`
	Notify          *NotifyConfig `json:"notify,omitempty" yaml:"notify,omitempty" hcl:"notify,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.FolderList == "" {
		return errors.Errorf("folder_list is required")
	}
	if cfg.DestinationRoot == "" && cfg.Share == nil {
		return errors.Errorf("either destination_root or a share block is required")
	}
	if cfg.Share != nil {
		if cfg.Share.Remote == "" {
			return errors.Errorf("share.remote is required")
		}
		if len(cfg.Share.MountPoints) == 0 {
			return errors.Errorf("share.mount_points must list at least one candidate")
		}
	}
	if cfg.Notify != nil && cfg.Notify.Enabled {
		if cfg.Notify.SMTPHost == "" {
			return errors.Errorf("notify.smtp_host is required when notifications are enabled")
		}
		if cfg.Notify.From == "" || len(cfg.Notify.To) == 0 {
			return errors.Errorf("notify.from and notify.to are required when notifications are enabled")
		}
	}

	// Set defaults
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.CopyTool == "" {
		cfg.CopyTool = "robocopy"
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.Notify != nil && cfg.Notify.SMTPPort == 0 {
		cfg.Notify.SMTPPort = 25
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	dest := cfg.DestinationRoot
	if cfg.Share != nil {
		dest = cfg.Share.Remote
	}
	return fmt.Sprintf("%s -> %s", cfg.FolderList, dest)
}

// 🔧 RunOptions are the per-invocation switches supplied on the command line.
type RunOptions struct {
	SimulateOnly   bool
	NotifyEnabled  bool
	AltCredentials bool
}

// ⚙️ RunConfig is the immutable configuration of one run, derived from the
// deployment config plus the invocation's options. The destination root is
// replaced by the mounted share root in alternate-credential mode.
type RunConfig struct {
	SimulateOnly        bool
	NotifyEnabled       bool
	DestinationRoot     string
	ExcludeFilePatterns []string
	ExcludeDirNames     []string
	Concurrency         int
}

// 🏭 RunConfig derives the configuration of one run.
func (cfg *Config) RunConfig(opts RunOptions) RunConfig {
	notify := opts.NotifyEnabled && cfg.Notify != nil && cfg.Notify.Enabled
	return RunConfig{
		SimulateOnly:        opts.SimulateOnly,
		NotifyEnabled:       notify,
		DestinationRoot:     cfg.DestinationRoot,
		ExcludeFilePatterns: cfg.ExcludeFiles,
		ExcludeDirNames:     cfg.ExcludeDirs,
		Concurrency:         cfg.Concurrency,
	}
}
