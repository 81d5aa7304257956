package main

import (
	"barber-lab/domain"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Profiles []seedProfile `yaml:"profiles" validate:"dive"`
}

type seedProfile struct {
	ID           string `yaml:"id" validate:"required"`
	Kind         string `yaml:"kind" validate:"oneof=business customer"`
	BusinessName string `yaml:"business_name" validate:"required_if=Kind business"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	Location     string `yaml:"location"`
	PhoneNumber  string `yaml:"phone_number"`
	Email        string `yaml:"email" validate:"omitempty,email"`
	Bio          string `yaml:"bio"`
}

// LoadProfiles reads and checks a YAML seed file.
// Identities must be unique within the file.
func LoadProfiles(r io.Reader) ([]domain.Profile, error) {
	var file seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	ids := lo.Map(file.Profiles, func(p seedProfile, _ int) string { return p.ID })
	if dup := lo.FindDuplicates(ids); len(dup) > 0 {
		return nil, fmt.Errorf("duplicate profile ids: %s", strings.Join(dup, ", "))
	}
	return lo.Map(file.Profiles, func(p seedProfile, _ int) domain.Profile {
		return domain.Profile{
			ID:           domain.Identity(p.ID),
			Kind:         domain.ProfileKind(p.Kind),
			BusinessName: p.BusinessName,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Location:     p.Location,
			PhoneNumber:  p.PhoneNumber,
			Email:        p.Email,
			Bio:          p.Bio,
		}
	}), nil
}
