// Package store is the only component that reads or writes collection documents.
// Each call performs its own whole-document read-modify-write cycle; there is no
// locking, so a second process writing at the same time wins or loses as a whole.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/accelerate/internal/schemas"
	"github.com/jonathan/accelerate/internal/types"
	embedded "github.com/jonathan/accelerate/schemas"
)

// Collection names an opportunity collection document.
type Collection string

// Opportunity collections, in the order they are concatenated when listing everything.
const (
	Accelerators Collection = "accelerators"
	Grants       Collection = "grants"
	Angels       Collection = "angels"
)

// Collections lists the opportunity collections in listing order.
var Collections = []Collection{Accelerators, Grants, Angels}

// ErrUnknownOpportunityType is returned when an opportunity cannot be routed to a collection.
var ErrUnknownOpportunityType = errors.New("unknown opportunity type")

// CollectionFor returns the collection an opportunity of type t is stored in.
func CollectionFor(t types.OpportunityType) (Collection, error) {
	switch t {
	case types.TypeAccelerator:
		return Accelerators, nil
	case types.TypeGrant:
		return Grants, nil
	case types.TypeAngel:
		return Angels, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOpportunityType, t)
	}
}

// Paths holds the location of every collection document.
type Paths struct {
	Opportunities map[Collection]string
	Products      string
	Applications  string
}

// DefaultPaths lays the collection documents out under dataDir.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		Opportunities: map[Collection]string{
			Accelerators: filepath.Join(dataDir, "opportunities", "accelerators.json"),
			Grants:       filepath.Join(dataDir, "opportunities", "grants.json"),
			Angels:       filepath.Join(dataDir, "opportunities", "angels.json"),
		},
		Products:     filepath.Join(dataDir, "products", "products.json"),
		Applications: filepath.Join(dataDir, "applications", "applications.json"),
	}
}

// Store reads and writes the collection documents.
type Store struct {
	paths   Paths
	now     func() time.Time
	logger  *log.Logger
	verbose bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for lastUpdated and updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets where discarded-document warnings are written.
// When verbose is true every read and write is traced as well.
func WithLogger(logger *log.Logger, verbose bool) Option {
	return func(s *Store) {
		s.logger = logger
		s.verbose = verbose
	}
}

// New creates a store rooted at dataDir.
func New(dataDir string, opts ...Option) *Store {
	return NewWithPaths(DefaultPaths(dataDir), opts...)
}

// NewWithPaths creates a store over explicit document paths.
func NewWithPaths(paths Paths, opts ...Option) *Store {
	s := &Store{
		paths: paths,
		now:   types.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paths returns the document paths the store owns.
func (s *Store) Paths() Paths {
	return s.paths
}

// GetOpportunities returns the opportunities of one collection, or of all three
// (accelerators, grants, angels) when filter is empty.
func (s *Store) GetOpportunities(filter Collection) []types.Opportunity {
	collections := Collections
	if filter != "" {
		collections = []Collection{filter}
	}

	all := []types.Opportunity{}
	for _, c := range collections {
		doc, report := s.LoadOpportunities(c)
		s.observe(report)
		all = append(all, doc.Opportunities...)
	}
	return all
}

// AddOpportunity appends o to the collection matching its type and rewrites that document.
func (s *Store) AddOpportunity(o types.Opportunity) error {
	collection, err := CollectionFor(o.Type)
	if err != nil {
		return err
	}
	o.ApplyDefaults()
	if err := o.Validate(); err != nil {
		return err
	}

	doc, report := s.LoadOpportunities(collection)
	s.observe(report)

	doc.Opportunities = append(doc.Opportunities, o)
	doc.LastUpdated = s.now()
	return s.write(s.paths.Opportunities[collection], embedded.Opportunities, doc)
}

// GetProducts returns every product in insertion order.
func (s *Store) GetProducts() []types.Product {
	doc, report := s.LoadProducts()
	s.observe(report)
	return doc.Products
}

// GetProduct returns the product whose id is exactly id.
func (s *Store) GetProduct(id string) (*types.Product, bool) {
	for _, p := range s.GetProducts() {
		if p.ID.String() == id {
			product := p
			return &product, true
		}
	}
	return nil, false
}

// AddProduct appends p to the product document.
func (s *Store) AddProduct(p types.Product) error {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return err
	}

	doc, report := s.LoadProducts()
	s.observe(report)

	doc.Products = append(doc.Products, p)
	doc.LastUpdated = s.now()
	return s.write(s.paths.Products, embedded.Products, doc)
}

// GetApplications returns every application in insertion order.
func (s *Store) GetApplications() []types.Application {
	doc, report := s.LoadApplications()
	s.observe(report)
	return doc.Applications
}

// AddApplication appends a to the application document.
// The referenced opportunity and product are not required to exist.
func (s *Store) AddApplication(a types.Application) error {
	a.ApplyDefaults()
	if err := a.Validate(); err != nil {
		return err
	}

	doc, report := s.LoadApplications()
	s.observe(report)

	doc.Applications = append(doc.Applications, a)
	doc.LastUpdated = s.now()
	return s.write(s.paths.Applications, embedded.Applications, doc)
}

// UpdateApplication merges patch into the application with exactly this id.
// An unknown id is not an error: nothing is written and found is false.
// A patch that leaves the record invalid is rejected and nothing is written.
func (s *Store) UpdateApplication(id string, patch types.ApplicationPatch) (found bool, err error) {
	doc, report := s.LoadApplications()
	s.observe(report)

	for i := range doc.Applications {
		if doc.Applications[i].ID.String() != id {
			continue
		}
		now := s.now()
		patch.Apply(&doc.Applications[i], now)
		if err := doc.Applications[i].Validate(); err != nil {
			return true, err
		}
		doc.LastUpdated = now
		return true, s.write(s.paths.Applications, embedded.Applications, doc)
	}
	return false, nil
}

// write persists document only if it would pass the same schema check readers apply.
func (s *Store) write(path, schemaName string, document interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &WriteError{Path: path, Message: "failed to create directory", Cause: err}
	}

	content, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Message: "failed to marshal document", Cause: err}
	}

	if err := schemas.ValidateDocument(schemaName, content); err != nil {
		return &WriteError{Path: path, Message: "document failed schema validation", Cause: err}
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return &WriteError{Path: path, Message: "failed to write document", Cause: err}
	}

	if s.verbose && s.logger != nil {
		s.logger.Printf("[STORE] wrote %s (%d bytes)", path, len(content))
	}
	return nil
}

// observe logs reads that fell back to an empty collection because the document was unreadable.
func (s *Store) observe(report LoadReport) {
	if s.logger == nil {
		return
	}
	switch {
	case report.Status == LoadInvalid:
		s.logger.Printf("[STORE] ignoring unreadable %s, treating it as empty: %v", report.Path, report.Err)
	case s.verbose:
		s.logger.Printf("[STORE] read %s: %s", report.Path, report.Status)
	}
}
