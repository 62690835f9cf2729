package career

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/muhammadolammi/careerpilot/internal/formatter"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type TrendingRole struct {
	Role        string `yaml:"role" json:"role"`
	Growth      string `yaml:"growth" json:"growth"`
	Description string `yaml:"description" json:"description"`
}

type EmergingSkill struct {
	Skill    string `yaml:"skill" json:"skill"`
	Demand   string `yaml:"demand" json:"demand"`
	Adoption string `yaml:"adoption" json:"adoption"`
}

type SalaryTrend struct {
	Role   string `yaml:"role" json:"role"`
	Entry  string `yaml:"entry" json:"entry"`
	Mid    string `yaml:"mid" json:"mid"`
	Senior string `yaml:"senior" json:"senior"`
}

// MarketSnapshot is the static table served when the model is unavailable.
type MarketSnapshot struct {
	TrendingRoles  []TrendingRole  `yaml:"trending_roles" json:"trending_roles"`
	EmergingSkills []EmergingSkill `yaml:"emerging_skills" json:"emerging_skills"`
	SalaryTrends   []SalaryTrend   `yaml:"salary_trends" json:"salary_trends"`
}

type MarketInsights struct {
	AIGenerated bool            `json:"ai_generated"`
	Insights    string          `json:"insights,omitempty"`
	Display     *formatter.Tree `json:"display,omitempty"`
	*MarketSnapshot
}

func loadFallback(data []byte) (*MarketSnapshot, error) {
	var snap MarketSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode market fallback: %w", err)
	}
	if len(snap.TrendingRoles) == 0 {
		return nil, fmt.Errorf("market fallback has no trending roles")
	}
	return &snap, nil
}
