package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProfileService resolves named PMR profiles for the advisory LLM. The
// catalog is loaded once at startup from a YAML file; profile payloads stay
// schemaless because they are forwarded verbatim to the upstream prompt.
type ProfileService struct {
	profiles map[string]map[string]any
}

// NewProfileService loads the profile catalog from path. A missing file is
// not an error: the service starts with an empty catalog and every request
// resolves to nothing unless the client sends an override.
func NewProfileService(path string) (*ProfileService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProfileService{profiles: map[string]map[string]any{}}, nil
		}
		return nil, fmt.Errorf("failed to read profile catalog: %w", err)
	}

	var profiles map[string]map[string]any
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profile catalog: %w", err)
	}
	if profiles == nil {
		profiles = map[string]map[string]any{}
	}

	return &ProfileService{profiles: profiles}, nil
}

// Resolve picks the profile payload to send upstream. A non-empty
// client-supplied override always wins; otherwise the named catalog entry,
// then the "default" entry, then an empty payload.
func (s *ProfileService) Resolve(name string, override map[string]any) map[string]any {
	if len(override) > 0 {
		return override
	}
	if profile, ok := s.profiles[name]; ok {
		return profile
	}
	if profile, ok := s.profiles["default"]; ok {
		return profile
	}
	return map[string]any{}
}

// Names lists the catalog entries, mainly for diagnostics.
func (s *ProfileService) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	return names
}
