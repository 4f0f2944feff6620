// Package seed loads the starter catalog used to populate a fresh store.
package seed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

// Catalog is the YAML fixture format
type Catalog struct {
	Products []CatalogProduct `yaml:"products"`
	Customer *CatalogCustomer `yaml:"customer"`
}

type CatalogProduct struct {
	Name           string   `yaml:"name"`
	Category       string   `yaml:"category"`
	Price          float64  `yaml:"price"`
	OriginalPrice  *float64 `yaml:"originalPrice"`
	Stock          int      `yaml:"stock"`
	Featured       bool     `yaml:"featured"`
	ImageURL       string   `yaml:"imageUrl"`
	Description    string   `yaml:"description"`
	Details        string   `yaml:"details"`
	Specifications string   `yaml:"specifications"`
}

// CatalogCustomer is an optional sample account
type CatalogCustomer struct {
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
	Address  string `yaml:"address"`
}

// LoadCatalogFile reads a catalog fixture from disk
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes a fixture. Unknown keys are rejected so typos surface.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	for i, p := range catalog.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("invalid catalog: product %d has no name", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("invalid catalog: product %q has a negative price", p.Name)
		}
	}
	return &catalog, nil
}

// CreateRequest converts a fixture entry to a product create payload
func (p CatalogProduct) CreateRequest() service.CreateProductRequest {
	price := p.Price
	stock := p.Stock
	featured := p.Featured
	return service.CreateProductRequest{
		Name:           p.Name,
		Category:       p.Category,
		Price:          &price,
		OriginalPrice:  p.OriginalPrice,
		Stock:          &stock,
		Featured:       &featured,
		ImageURL:       optional(p.ImageURL),
		Description:    optional(p.Description),
		Details:        optional(p.Details),
		Specifications: optional(p.Specifications),
	}
}

// RegisterRequest converts the sample customer to a registration payload
func (c CatalogCustomer) RegisterRequest() service.RegisterRequest {
	return service.RegisterRequest{Name: c.Name, Phone: c.Phone, Password: c.Password, Address: c.Address}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
