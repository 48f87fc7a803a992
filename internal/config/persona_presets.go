package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"parley-server/services/chat-api/internal/domain/persona"
)

// defaultPersonaPresets ship with the service and are used when no
// preset file is configured.
var defaultPersonaPresets = []persona.Preset{
	{
		Name:         "Concise Assistant",
		SystemPrompt: "You are a helpful assistant. Keep answers short and direct.",
	},
	{
		Name:         "Code Reviewer",
		SystemPrompt: "You are an experienced software engineer reviewing code. Point out bugs, risky patterns and missing tests.",
	},
	{
		Name:         "Technical Writer",
		SystemPrompt: "You are a technical writer. Explain topics clearly with examples, avoiding jargon where possible.",
	},
}

type personaPresetDocument struct {
	Presets []personaPresetEntry `yaml:"presets"`
}

type personaPresetEntry struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

// LoadPersonaPresets parses the yaml file at the provided path. An
// empty path or a missing file falls back to the built-in presets.
func LoadPersonaPresets(path string, log zerolog.Logger) ([]persona.Preset, error) {
	if strings.TrimSpace(path) == "" {
		return defaultPersonaPresets, nil
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", cleanPath).Msg("persona preset file not found, using built-in presets")
			return defaultPersonaPresets, nil
		}
		return nil, fmt.Errorf("read persona presets %q: %w", cleanPath, err)
	}
	log.Info().Str("path", cleanPath).Msg("loading persona preset file")

	var doc personaPresetDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse persona presets %q: %w", cleanPath, err)
	}

	presets := make([]persona.Preset, 0, len(doc.Presets))
	for idx, entry := range doc.Presets {
		name := strings.TrimSpace(entry.Name)
		prompt := strings.TrimSpace(entry.SystemPrompt)
		if name == "" || prompt == "" {
			return nil, fmt.Errorf("presets[%d]: name and system_prompt are required", idx)
		}
		presets = append(presets, persona.Preset{Name: name, SystemPrompt: prompt})
	}
	if len(presets) == 0 {
		log.Warn().Str("path", cleanPath).Msg("persona preset file has no entries, using built-in presets")
		return defaultPersonaPresets, nil
	}
	return presets, nil
}
