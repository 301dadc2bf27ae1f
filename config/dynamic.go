// Package config implements the dynamic (no-restart-required) settings a
// host applies to the generator, and a real-world DUT1 bulletin loader.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-version"
	yaml "gopkg.in/yaml.v2"

	"github.com/equivtech/timesig/station"
)

// minSchemaVersion is the oldest Dynamic.SchemaVersion this build accepts.
var minSchemaVersion = version.Must(version.NewVersion("1.0.0"))

// Dynamic is the set of options a host can change without restarting the
// generator: which station and JJY carrier play by default, and whether
// gain changes step or LERP.
type Dynamic struct {
	SchemaVersion  string          `yaml:"schema_version"`
	DefaultStation station.Station `yaml:"default_station"`
	DefaultJJYKHz  station.JJYFreq `yaml:"default_jjy_khz"`
	NoClip         bool            `yaml:"no_clip"`
}

// SchemaVersionSanity checks SchemaVersion parses as a semantic version
// and is at least minSchemaVersion, so a config written by an older build
// of this tool is rejected with a clear error instead of being silently
// misinterpreted. Versions newer than minSchemaVersion are accepted.
func (dc *Dynamic) SchemaVersionSanity() error {
	v, err := version.NewVersion(dc.SchemaVersion)
	if err != nil {
		return fmt.Errorf("config: invalid schema_version %q: %w", dc.SchemaVersion, err)
	}
	if v.LessThan(minSchemaVersion) {
		return fmt.Errorf("config: schema_version %s is older than the minimum supported %s", v, minSchemaVersion)
	}
	return nil
}

// ReadDynamic reads and validates a Dynamic config from a YAML file.
func ReadDynamic(path string) (*Dynamic, error) {
	dc := &Dynamic{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, dc); err != nil {
		return nil, err
	}

	if err := dc.SchemaVersionSanity(); err != nil {
		return nil, err
	}

	return dc, nil
}

// Write serializes dc to path as YAML.
func (dc *Dynamic) Write(path string) error {
	d, err := yaml.Marshal(dc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0644)
}
