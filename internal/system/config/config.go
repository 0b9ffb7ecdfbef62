/*
 * Copyright (c) 2026, DonorBridge LLC. (https://www.donorbridge.io).
 *
 * DonorBridge LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DedupConfig holds the tuning knobs for duplicate detection.
type DedupConfig struct {
	// AcceptThreshold is the minimum composite score for a scan to record a match.
	AcceptThreshold int `yaml:"accept_threshold"`
	// InlineMatchThreshold is the hard gate used when matching incoming
	// webhook records against existing contacts.
	InlineMatchThreshold int `yaml:"inline_match_threshold"`
	// ScanChunkSize bounds how many contacts a scan loads per chunk.
	ScanChunkSize int `yaml:"scan_chunk_size"`
	// ScorerWorkers bounds the parallelism of candidate scoring.
	ScorerWorkers int `yaml:"scorer_workers"`
	// CandidateCacheTTLSeconds is the TTL of the candidate list cache.
	CandidateCacheTTLSeconds int `yaml:"candidate_cache_ttl_seconds"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Dedup      DedupConfig      `yaml:"dedup"`
}

// LoadConfig reads the deployment configuration from the service home directory.
func LoadConfig(serviceHome, configFile string) (*Config, error) {

	configBytes, err := os.ReadFile(path.Join(serviceHome, configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(configBytes, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {

	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.Dedup.AcceptThreshold == 0 {
		cfg.Dedup.AcceptThreshold = 50
	}
	if cfg.Dedup.InlineMatchThreshold == 0 {
		cfg.Dedup.InlineMatchThreshold = 75
	}
	if cfg.Dedup.ScanChunkSize == 0 {
		cfg.Dedup.ScanChunkSize = 200
	}
	if cfg.Dedup.ScorerWorkers == 0 {
		cfg.Dedup.ScorerWorkers = 8
	}
	if cfg.Dedup.CandidateCacheTTLSeconds == 0 {
		cfg.Dedup.CandidateCacheTTLSeconds = 300
	}
}
