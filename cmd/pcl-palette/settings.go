// seehuhn.de/go/pcl - color palettes for PCL interpreters
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// envConfig names the environment variable which points to the settings
// file, if --config is not given.
const envConfig = "PCL_PALETTE_CONFIG"

// Settings holds the interpreter settings used when replaying a job.
type Settings struct {
	// MemoryLimit bounds the memory used by palette objects, in bytes.
	// Zero means no limit.
	MemoryLimit int `yaml:"memory_limit"`

	// Profile is the path of an ICC profile for the output device.
	// If empty, sRGB is used.
	Profile string `yaml:"profile"`

	// Precision is the number of digits printed after the decimal point.
	Precision int `yaml:"precision"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`

	// KeepGoing makes the replay continue after a failed command.
	KeepGoing bool `yaml:"keep_going"`
}

func defaultSettings() *Settings {
	return &Settings{
		Precision: 3,
		LogLevel:  "warn",
	}
}

// loadSettings reads the settings file at path.  If path is empty, the
// file named by $PCL_PALETTE_CONFIG is used; if that is unset too, the
// default settings are returned.
func loadSettings(path string) (*Settings, error) {
	s := defaultSettings()
	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	if s.Precision < 0 || s.Precision > 17 {
		return nil, fmt.Errorf("settings %s: invalid precision %d", path, s.Precision)
	}
	if _, err := s.level(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s.LogLevel))
	return level, err
}
