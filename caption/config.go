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

package caption

import (
	"errors"
	"fmt"

	"github.com/streamtools/cc-injector/cea608"
)

type Config struct {
	Listen        string `yaml:"listen"`
	LingerMS      int    `yaml:"linger-ms"`
	Bootstrap     bool   `yaml:"bootstrap"`
	BootstrapText string `yaml:"bootstrap-text"`
	Row           int    `yaml:"row"`
}

func DefaultConfig() Config {
	return Config{
		Listen:        "127.0.0.1:54001",
		LingerMS:      750,
		Bootstrap:     true,
		BootstrapText: "CC ONLINE",
		Row:           15,
	}
}

func (conf *Config) Validate() error {
	if conf.LingerMS < 0 {
		return errors.New("linger-ms should not be negative")
	}
	if conf.Row < 1 || conf.Row > 15 {
		return errors.New("row should be in range 1 - 15")
	}
	if len(conf.BootstrapText) > cea608.MaxLineLength {
		return fmt.Errorf("bootstrap-text longer than %d characters", cea608.MaxLineLength)
	}
	for i := 0; i < len(conf.BootstrapText); i++ {
		if c := conf.BootstrapText[i]; c < 0x20 || c > 0x7E {
			return errors.New("bootstrap-text should be printable ASCII")
		}
	}
	if conf.Bootstrap && conf.BootstrapText == "" {
		return errors.New("bootstrap enabled but bootstrap-text is empty")
	}
	return nil
}
