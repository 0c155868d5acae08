package appconf

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/sudface/frequency/internal/schedule"
	"gopkg.in/yaml.v3"
)

type profilesFile struct {
	Profiles map[string]profileSpec `yaml:"profiles" validate:"required,min=1,dive"`
}

type profileSpec struct {
	Windows []windowSpec `yaml:"windows" validate:"required,min=1,dive"`
}

type windowSpec struct {
	Key   string  `yaml:"key" validate:"required,alphanum"`
	Start string  `yaml:"start" validate:"required"`
	End   string  `yaml:"end" validate:"required"`
	Mode  string  `yaml:"mode" validate:"required,oneof=average rate"`
	Hours float64 `yaml:"hours" validate:"gte=0"`
}

// LoadProfiles returns the built-in profiles, overridden and extended by the
// profiles of the YAML file at path. An empty path yields the built-in ones.
func LoadProfiles(path string) (map[string]schedule.Profile, error) {
	profiles := schedule.DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profiles: %w", err)
	}
	parsed, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for name, p := range parsed {
		profiles[name] = p
	}
	return profiles, nil
}

// ParseProfiles parses and validates a YAML profiles document.
func ParseProfiles(data []byte) (map[string]schedule.Profile, error) {
	var doc profilesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing profiles: %w", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid profiles: %w", err)
	}

	profiles := make(map[string]schedule.Profile, len(doc.Profiles))
	for name, spec := range doc.Profiles {
		p := schedule.Profile{Name: name}
		for _, w := range spec.Windows {
			start, err := schedule.ParseMinuteOfDay(w.Start)
			if err != nil {
				return nil, fmt.Errorf("profile %s window %s: %w", name, w.Key, err)
			}
			end, err := schedule.ParseMinuteOfDay(w.End)
			if err != nil {
				return nil, fmt.Errorf("profile %s window %s: %w", name, w.Key, err)
			}
			p.Windows = append(p.Windows, schedule.Window{
				Key:   w.Key,
				Start: start,
				End:   end,
				Mode:  schedule.Mode(w.Mode),
				Hours: w.Hours,
			})
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles[name] = p
	}
	return profiles, nil
}

// ProfileNames returns the profile names in ascending order.
func ProfileNames(profiles map[string]schedule.Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
