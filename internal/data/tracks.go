package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marines/sim/internal/anim"
)

type trackEntry struct {
	Name          string  `yaml:"name"`
	Frames        int     `yaml:"frames"`
	FrameDuration float64 `yaml:"frame_duration"`
	Loop          bool    `yaml:"loop"`
}

type trackListFile struct {
	Tracks []trackEntry `yaml:"tracks"`
}

// LoadTrackTable reads animation track timings from YAML. Tracks missing from
// the file keep their built-in defaults.
func LoadTrackTable(path string) (*anim.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track list %s: %w", path, err)
	}
	var file trackListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse track list: %w", err)
	}

	table := anim.DefaultTable()
	for _, e := range file.Tracks {
		id, err := anim.ParseTrackID(e.Name)
		if err != nil {
			return nil, fmt.Errorf("track list %s: %w", path, err)
		}
		table.Set(id, anim.Track{
			Frames:        e.Frames,
			FrameDuration: e.FrameDuration,
			Loop:          e.Loop,
		})
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("track list %s: %w", path, err)
	}
	return table, nil
}
