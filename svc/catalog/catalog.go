// Package catalog holds the site content: business details, featured
// products, collections, materials and testimonials. The content ships
// embedded as YAML and is loaded once at startup.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrFailedToParseCatalog = errors.New("catalog: failed to parse")
	ErrInvalidCatalog       = errors.New("catalog: invalid content")
	ErrProductNotFound      = errors.New("catalog: product not found")
)

//go:embed catalog.yaml
var embedded []byte

type Swatch struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Product struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Price           string   `yaml:"price"`
	Image           string   `yaml:"image"`
	Badge           string   `yaml:"badge"`
	Materials       []string `yaml:"materials"`
	Swatches        []Swatch `yaml:"swatches"`
	QuickLookImages []string `yaml:"quick_look_images"`
	Dimensions      string   `yaml:"dimensions"`
}

type Collection struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Count       string `yaml:"count"`
	Image       string `yaml:"image"`
}

type Material struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type Testimonial struct {
	Name      string `yaml:"name"`
	Rating    int    `yaml:"rating"`
	Highlight string `yaml:"highlight"`
	Text      string `yaml:"text"`
}

type Link struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

type LinkGroup struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

type Business struct {
	Name       string   `yaml:"name"`
	Tagline    string   `yaml:"tagline"`
	Intro      string   `yaml:"intro"`
	Phone      string   `yaml:"phone"`
	PhoneTel   string   `yaml:"phone_tel"`
	Email      string   `yaml:"email"`
	Location   string   `yaml:"location"`
	Highlights []string `yaml:"highlights"`
}

// Catalog is the full site content. Treat it as read-only once loaded.
type Catalog struct {
	Business     Business      `yaml:"business"`
	ServiceAreas []string      `yaml:"service_areas"`
	Products     []Product     `yaml:"products"`
	Collections  []Collection  `yaml:"collections"`
	Materials    []Material    `yaml:"materials"`
	Testimonials []Testimonial `yaml:"testimonials"`
	Footer       []LinkGroup   `yaml:"footer"`

	byID map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad is Load that panics on error.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and checks catalog content.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Join(ErrFailedToParseCatalog, err)
	}
	if c.Business.Name == "" {
		return nil, fmt.Errorf("%w: business name is empty", ErrInvalidCatalog)
	}

	c.byID = make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: product #%d needs an id and a name", ErrInvalidCatalog, i+1)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = i
	}
	return &c, nil
}

// Product returns the product with id.
func (c *Catalog) Product(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	return c.Products[i], nil
}

// Featured returns the lead product and the rest, in catalog order.
func (c *Catalog) Featured() (lead Product, rest []Product) {
	if len(c.Products) == 0 {
		return Product{}, nil
	}
	return c.Products[0], c.Products[1:]
}

// ServiceArea lists the service areas as prose: "A, B and C".
func (c *Catalog) ServiceArea() string {
	switch n := len(c.ServiceAreas); n {
	case 0:
		return c.Business.Location
	case 1:
		return c.ServiceAreas[0]
	default:
		return strings.Join(c.ServiceAreas[:n-1], ", ") + " and " + c.ServiceAreas[n-1]
	}
}
