package services

import (
	"strings"

	"verbtrainer/internal/models"
	contextutils "verbtrainer/internal/utils"

	"gopkg.in/yaml.v3"
)

// PromptDeck is the read-only list of free-translation prompts
type PromptDeck struct {
	prompts []models.Prompt
}

// NewPromptDeck copies prompts into a deck, dropping blank ones
func NewPromptDeck(prompts []models.Prompt) *PromptDeck {
	d := &PromptDeck{prompts: make([]models.Prompt, 0, len(prompts))}
	for _, p := range prompts {
		p.Text = strings.TrimSpace(p.Text)
		if p.Text == "" {
			continue
		}
		d.prompts = append(d.prompts, p)
	}
	return d
}

// ParsePrompts decodes a prompt deck document
func ParsePrompts(data []byte) (*PromptDeck, error) {
	var raw struct {
		Prompts []models.Prompt `yaml:"prompts"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"failed to decode prompt deck", "", err)
	}
	return NewPromptDeck(raw.Prompts), nil
}

// Len returns the number of prompts
func (d *PromptDeck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.prompts)
}

// Draw returns a uniformly chosen prompt; ok is false for an empty deck
func (d *PromptDeck) Draw(rng RandomSource) (models.Prompt, bool) {
	if d.Len() == 0 {
		return models.Prompt{}, false
	}
	return d.prompts[rng.IntN(len(d.prompts))], true
}
