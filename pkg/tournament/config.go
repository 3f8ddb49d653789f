// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tournament

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScheduler = "auto"
	DefaultTimeout   = 10 * time.Second
)

type Config struct {
	// Name of the rodeo, shown in reports.
	Name string `yaml:"name" json:"name"`

	// Day the rodeo is played on.
	Date time.Time `yaml:"date" json:"date"`

	Rounds int `yaml:"rounds" json:"rounds"` // Number of rounds to play.
	Courts int `yaml:"courts" json:"courts"` // Number of courts available.

	// Scheduler used to spread matches over rounds: auto, greedy, or
	// backtracking. Defaults to auto.
	Scheduler string `yaml:"scheduler" json:"scheduler"`

	// Maximum time spent looking for a schedule. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout" json:"-"`

	// The teams taking part in the rodeo. A config without teams gets
	// placeholder teams from the driver.
	Teams []Team `yaml:"teams" json:"teams"`
}

// LoadConfig reads a YAML rodeo configuration from the given file and fills
// in the defaults for any missing optional fields.
func LoadConfig(path string) (Config, error) {
	var config Config

	buffer, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(buffer, &config); err != nil {
		return config, fmt.Errorf("load config %s: %w", path, err)
	}

	config.Defaults()
	return config, nil
}

// Defaults fills the empty optional fields of the configuration.
func (config *Config) Defaults() {
	if config.Scheduler == "" {
		config.Scheduler = DefaultScheduler
	}

	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
}

func (config *Config) Factory() *Factory {
	return &Factory{
		Rounds:    config.Rounds,
		Courts:    config.Courts,
		Scheduler: config.Scheduler,
		Timeout:   config.Timeout,
	}
}

// MakeRodeo builds the rodeo described by the configuration.
func (config *Config) MakeRodeo(ctx context.Context) (*Rodeo, error) {
	return config.Factory().MakeRodeo(ctx, config.Name, config.Date, config.Teams)
}
