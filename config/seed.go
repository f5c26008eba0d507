package config

import (
	_ "embed"
	"fmt"
	"os"

	domain "github.com/example/patterns-shop/domain/shop"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedUser is an account created at startup.
type SeedUser struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// User returns the account without its password.
func (u SeedUser) User() domain.User {
	return domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Seed is the initial catalog and account list.
type Seed struct {
	Products []domain.Product `yaml:"products"`
	Users    []SeedUser       `yaml:"users"`
}

// LoadSeed reads the seed at path, or the built-in seed when path is empty.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed parses YAML seed data and rejects duplicate or negative entries.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	seen := make(map[int]bool, len(s.Products))
	for _, p := range s.Products {
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %d in seed", p.ID)
		}
		if p.Price < 0 || p.Stock < 0 {
			return nil, fmt.Errorf("product %d has negative price or stock", p.ID)
		}
		seen[p.ID] = true
	}
	return &s, nil
}
