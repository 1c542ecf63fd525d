package organisations

import (
	"fmt"
	"io"

	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"gopkg.in/yaml.v2"
)

// Registry resolves ids from the bureau/division/office hierarchy that
// publishers register under. The hierarchy is reference data produced
// upstream and loaded once at startup.
type Registry interface {
	GetBureau(id string) (*domain.Bureau, error)
	GetDivision(id string) (*domain.Division, error)
	GetOffice(id string) (*domain.Office, error)
}

func NewRegistry(input io.Reader) (Registry, error) {
	content, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read organisation registry: %w", err)
	}

	cfg := registryConfig{}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse organisation registry: %w", err)
	}

	r := &registry{
		bureaus:   map[string]domain.Bureau{},
		divisions: map[string]domain.Division{},
		offices:   map[string]domain.Office{},
	}

	for _, b := range cfg.Bureaus {
		r.bureaus[b.ID] = b
	}
	for _, d := range cfg.Divisions {
		r.divisions[d.ID] = d
	}
	for _, o := range cfg.Offices {
		r.offices[o.ID] = o
	}

	return r, nil
}

type registryConfig struct {
	Bureaus   []domain.Bureau   `yaml:"bureaus"`
	Divisions []domain.Division `yaml:"divisions"`
	Offices   []domain.Office   `yaml:"offices"`
}

type registry struct {
	bureaus   map[string]domain.Bureau
	divisions map[string]domain.Division
	offices   map[string]domain.Office
}

func (r *registry) GetBureau(id string) (*domain.Bureau, error) {
	if b, ok := r.bureaus[id]; ok {
		return &b, nil
	}
	return nil, fmt.Errorf("no such bureau: %s", id)
}

func (r *registry) GetDivision(id string) (*domain.Division, error) {
	if d, ok := r.divisions[id]; ok {
		return &d, nil
	}
	return nil, fmt.Errorf("no such division: %s", id)
}

func (r *registry) GetOffice(id string) (*domain.Office, error) {
	if o, ok := r.offices[id]; ok {
		return &o, nil
	}
	return nil, fmt.Errorf("no such office: %s", id)
}
