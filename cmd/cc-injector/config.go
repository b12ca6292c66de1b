// cc-injector - inject live text captions into a video stream as CEA-608
//  Copyright (C) 2026, Streamtools
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
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"

	"github.com/streamtools/cc-injector/caption"
)

type Config struct {
	FrameInput  string         `yaml:"frame-input"`
	FrameOutput string         `yaml:"frame-output"`
	Caption     caption.Config `yaml:"caption"`
}

func (conf *Config) Validate() error {
	if conf.FrameInput == "" {
		return errors.New("frame-input should be set")
	}
	if conf.FrameOutput == "" {
		return errors.New("frame-output should be set")
	}
	if conf.FrameInput == conf.FrameOutput {
		return errors.New("frame-input and frame-output should differ")
	}
	return conf.Caption.Validate()
}

var defaultConfig = Config{
	FrameInput:  "/var/run/cc-frames",
	FrameOutput: "/var/run/cc-frames-out",
	Caption:     caption.DefaultConfig(),
}

func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}
