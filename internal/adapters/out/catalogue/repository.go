// Package catalogue implements the CatalogueRepository port over a YAML
// file. The catalogue of orderable products is owned by the LIMS side and
// shipped to this service as a file; it is loaded once at startup into an
// in-memory read-only index.
package catalogue

import (
	"context"
	"fmt"
	"os"

	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// FileRepository is an in-memory catalogue index loaded from a YAML file.
// All lookups run against the loaded snapshot; updating the catalogue
// requires a service restart.
type FileRepository struct {
	products map[kernel.UUID]*catalog.Product
	ordered  []*catalog.Product
}

type catalogueFile struct {
	Catalogue struct {
		LIMSID   string           `yaml:"lims_id"`
		URL      string           `yaml:"url"`
		Products []productPayload `yaml:"products"`
	} `yaml:"catalogue"`
}

type productPayload struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	Version      int              `yaml:"version"`
	Availability bool             `yaml:"availability"`
	Processes    []processPayload `yaml:"processes"`
}

type processPayload struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Stage   int             `yaml:"stage"`
	Modules []modulePayload `yaml:"modules"`
}

type modulePayload struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// NewFileRepository loads the catalogue from the given YAML file.
//
// Example:
//
//	repo, err := catalogue.NewFileRepository("/etc/workplans/catalogue.yml")
//	if err != nil {
//	    log.Fatalf("catalogue: %v", err)
//	}
func NewFileRepository(path string) (*FileRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}

	var file catalogueFile
	if err = yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	repo := &FileRepository{
		products: make(map[kernel.UUID]*catalog.Product, len(file.Catalogue.Products)),
		ordered:  make([]*catalog.Product, 0, len(file.Catalogue.Products)),
	}

	source := catalog.Catalogue{
		LIMSID: file.Catalogue.LIMSID,
		URL:    file.Catalogue.URL,
	}

	for _, payload := range file.Catalogue.Products {
		product, buildErr := buildProduct(payload, source)
		if buildErr != nil {
			return nil, fmt.Errorf("parse catalogue product %q: %w", payload.Name, buildErr)
		}
		repo.products[product.ID] = product
		repo.ordered = append(repo.ordered, product)
	}

	return repo, nil
}

// GetProduct retrieves a product definition, with its processes and their
// modules, by product identifier.
func (r *FileRepository) GetProduct(_ context.Context, id kernel.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}

	return product, nil
}

// GetAvailableProducts retrieves all products currently offered, in
// catalogue file order.
func (r *FileRepository) GetAvailableProducts(_ context.Context) ([]*catalog.Product, error) {
	available := make([]*catalog.Product, 0, len(r.ordered))
	for _, product := range r.ordered {
		if product.Availability {
			available = append(available, product)
		}
	}

	return available, nil
}

func buildProduct(payload productPayload, source catalog.Catalogue) (*catalog.Product, error) {
	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return nil, err
	}

	processes := make([]catalog.Process, 0, len(payload.Processes))
	for _, proc := range payload.Processes {
		process, procErr := buildProcess(proc)
		if procErr != nil {
			return nil, procErr
		}
		processes = append(processes, process)
	}

	return &catalog.Product{
		ID:           id,
		Name:         payload.Name,
		Version:      payload.Version,
		Availability: payload.Availability,
		Catalogue:    source,
		Processes:    processes,
	}, nil
}

func buildProcess(payload processPayload) (catalog.Process, error) {
	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return catalog.Process{}, err
	}

	modules := make([]catalog.ProcessModule, 0, len(payload.Modules))
	for _, mod := range payload.Modules {
		moduleID, modErr := kernel.UUIDFromString(mod.ID)
		if modErr != nil {
			return catalog.Process{}, modErr
		}
		modules = append(modules, catalog.ProcessModule{ID: moduleID, Name: mod.Name})
	}

	return catalog.Process{
		ID:      id,
		Name:    payload.Name,
		Stage:   payload.Stage,
		Modules: modules,
	}, nil
}
