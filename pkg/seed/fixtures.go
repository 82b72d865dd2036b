package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type UserFixture struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// TodoTemplate is a [title, description] pair.
type TodoTemplate [2]string

type Fixtures struct {
	Users      []UserFixture  `yaml:"users"`
	Priorities []string       `yaml:"priorities"`
	Categories []string       `yaml:"categories"`
	Todos      []TodoTemplate `yaml:"todos"`
	LogActions []string       `yaml:"log_actions"`
}

// LoadFixtures parses the embedded fixture file.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(fx.Priorities) == 0 || len(fx.Todos) == 0 {
		return nil, fmt.Errorf("parse fixtures: priorities and todos are required")
	}
	return &fx, nil
}
