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
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/crd"
	"seehuhn.de/go/pcl/state"
)

// Job is a script of palette commands.
type Job struct {
	Commands []Command `yaml:"commands"`
}

// Command is one palette command.  Binary payloads are given in
// hexadecimal; white space inside the hex string is ignored.
type Command struct {
	Op         string    `yaml:"op"`
	Data       string    `yaml:"data,omitempty"`
	Index      int       `yaml:"index,omitempty"`
	Count      int       `yaml:"count,omitempty"`
	Color      []float64 `yaml:"color,omitempty"`
	White      []float64 `yaml:"white,omitempty"`
	Black      []float64 `yaml:"black,omitempty"`
	Value      float64   `yaml:"value,omitempty"`
	ID         uint      `yaml:"id,omitempty"`
	Illuminant []float64 `yaml:"illuminant,omitempty"`
}

func readJob(r io.Reader) (*Job, error) {
	job := &Job{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(job); err != nil && err != io.EOF {
		return nil, err
	}
	return job, nil
}

// replay runs the commands of the job against s.  Unless keepGoing is
// set, the first failing command ends the replay.
func replay(s *state.State, job *Job, keepGoing bool, logger *slog.Logger) error {
	for i, c := range job.Commands {
		err := c.apply(s)
		if err == nil {
			continue
		}
		err = fmt.Errorf("command %d (%s): %w", i+1, c.Op, err)
		if !keepGoing {
			return err
		}
		logger.Warn("command failed", "error", err)
	}
	return nil
}

func (c *Command) apply(s *state.State) error {
	switch c.Op {
	case "configure":
		data, err := c.payload()
		if err != nil {
			return err
		}
		return s.ConfigureImageData(data)
	case "simple":
		return s.SimpleColor(int(c.Value))
	case "entry":
		col, err := triple("color", c.Color)
		if err != nil {
			return err
		}
		return s.SetEntry(c.Index, col)
	case "entries":
		return s.SetEntryCount(c.Count)
	case "range":
		white, err := triple("white", c.White)
		if err != nil {
			return err
		}
		black, err := triple("black", c.Black)
		if err != nil {
			return err
		}
		return s.SetNormalization(white, black)
	case "lookup":
		data, err := c.payload()
		if err != nil {
			return err
		}
		return s.DownloadLookupTable(data)
	case "gamma":
		return s.SetGamma(c.Value)
	case "illuminant":
		if len(c.Illuminant) != 2 {
			return fmt.Errorf("illuminant needs 2 values, got %d", len(c.Illuminant))
		}
		data := crd.EncodeIlluminant(cid.Chroma{X: c.Illuminant[0], Y: c.Illuminant[1]})
		return s.SetViewIlluminant(data)
	case "method":
		return s.SetRenderMethod(int(c.Value))
	case "dither":
		data, err := c.payload()
		if err != nil {
			return err
		}
		return s.DownloadDither(data)
	case "pen":
		return s.SetPenWidth(c.Index, c.Value)
	case "push":
		return s.PushPop(state.Push)
	case "pop":
		return s.PushPop(state.Pop)
	case "select":
		return s.SelectID(c.ID)
	case "control-id":
		return s.SetControlID(c.ID)
	case "control":
		return s.Control(int(c.Value))
	case "reset":
		return s.Reset()
	default:
		return fmt.Errorf("unknown operation %q", c.Op)
	}
}

func (c *Command) payload() ([]byte, error) {
	clean := strings.Join(strings.Fields(c.Data), "")
	return hex.DecodeString(clean)
}

func triple(name string, xs []float64) ([3]float64, error) {
	if len(xs) != 3 {
		return [3]float64{}, fmt.Errorf("%s needs 3 values, got %d", name, len(xs))
	}
	return [3]float64(xs), nil
}
