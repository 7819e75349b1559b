// Package config loads file-based settings that do not fit into environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OFFIS-RIT/chatlens/pkg/profile"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported cluster names format")

// namesFile is the layout of a cluster names file:
//
//	clusters:
//	  0: Casual Participants
//	  1: Active Contributors
//
// TOML keys are always strings, so labels are parsed afterwards.
type namesFile struct {
	Clusters map[string]string `yaml:"clusters" toml:"clusters"`
}

// LoadClusterNames reads a label to name mapping from a YAML or TOML file,
// chosen by extension.
func LoadClusterNames(path string) (profile.Names, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseClusterNames(raw, filepath.Ext(path))
}

// ParseClusterNames decodes raw as YAML (".yaml", ".yml") or TOML (".toml").
func ParseClusterNames(raw []byte, ext string) (profile.Names, error) {
	var file namesFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse cluster names: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(raw), &file); err != nil {
			return nil, fmt.Errorf("failed to parse cluster names: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	names := make(profile.Names, len(file.Clusters))
	for key, name := range file.Clusters {
		label, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || label < 0 {
			return nil, fmt.Errorf("invalid cluster label %q", key)
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("empty name for cluster %d", label)
		}
		names[label] = name
	}
	return names, nil
}
