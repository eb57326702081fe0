package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/jonathan/accelerate/internal/schemas"
	"github.com/jonathan/accelerate/internal/types"
	embedded "github.com/jonathan/accelerate/schemas"
)

// OpportunityList is the on-disk document for one opportunity collection.
type OpportunityList struct {
	Opportunities []types.Opportunity `json:"opportunities"`
	LastUpdated   time.Time           `json:"lastUpdated"`
}

// ProductList is the on-disk product document.
type ProductList struct {
	Products    []types.Product `json:"products"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// ApplicationList is the on-disk application document.
type ApplicationList struct {
	Applications []types.Application `json:"applications"`
	LastUpdated  time.Time           `json:"lastUpdated"`
}

// LoadStatus is the outcome of reading a collection document.
type LoadStatus int

// Load outcomes
const (
	// LoadOK means the document was read and passed the schema.
	LoadOK LoadStatus = iota
	// LoadMissing means the document does not exist yet.
	LoadMissing
	// LoadInvalid means the document exists but could not be used; its content was discarded.
	LoadInvalid
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadReport describes how a document read went. Err is set only for LoadInvalid.
type LoadReport struct {
	Path   string
	Status LoadStatus
	Err    error
}

// WriteError represents a failure to persist a collection document
type WriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("write error for %s: %s", e.Path, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// LoadOpportunities reads one opportunity collection. The returned document is never nil:
// unless the report says LoadOK it is a fresh empty collection.
func (s *Store) LoadOpportunities(c Collection) (*OpportunityList, LoadReport) {
	fresh := &OpportunityList{Opportunities: []types.Opportunity{}, LastUpdated: s.now()}
	path, ok := s.paths.Opportunities[c]
	if !ok {
		return fresh, LoadReport{Path: string(c), Status: LoadMissing}
	}

	var doc OpportunityList
	report := readDocument(path, embedded.Opportunities, &doc)
	if report.Status != LoadOK {
		return fresh, report
	}
	if doc.Opportunities == nil {
		doc.Opportunities = []types.Opportunity{}
	}
	return &doc, report
}

// LoadProducts reads the product document, falling back to an empty collection.
func (s *Store) LoadProducts() (*ProductList, LoadReport) {
	var doc ProductList
	report := readDocument(s.paths.Products, embedded.Products, &doc)
	if report.Status != LoadOK {
		return &ProductList{Products: []types.Product{}, LastUpdated: s.now()}, report
	}
	if doc.Products == nil {
		doc.Products = []types.Product{}
	}
	return &doc, report
}

// LoadApplications reads the application document, falling back to an empty collection.
func (s *Store) LoadApplications() (*ApplicationList, LoadReport) {
	var doc ApplicationList
	report := readDocument(s.paths.Applications, embedded.Applications, &doc)
	if report.Status != LoadOK {
		return &ApplicationList{Applications: []types.Application{}, LastUpdated: s.now()}, report
	}
	if doc.Applications == nil {
		doc.Applications = []types.Application{}
	}
	return &doc, report
}

// Check reads every collection document and reports how each one loaded.
func (s *Store) Check() []LoadReport {
	reports := make([]LoadReport, 0, len(Collections)+2)
	for _, c := range Collections {
		_, report := s.LoadOpportunities(c)
		reports = append(reports, report)
	}
	_, report := s.LoadProducts()
	reports = append(reports, report)
	_, report = s.LoadApplications()
	reports = append(reports, report)
	return reports
}

// readDocument loads path into target after checking it against the named schema.
func readDocument(path, schemaName string, target interface{}) LoadReport {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadReport{Path: path, Status: LoadMissing}
		}
		return LoadReport{Path: path, Status: LoadInvalid, Err: fmt.Errorf("failed to read file: %w", err)}
	}

	if err := schemas.ValidateDocument(schemaName, content); err != nil {
		return LoadReport{Path: path, Status: LoadInvalid, Err: err}
	}

	if err := json.Unmarshal(content, target); err != nil {
		return LoadReport{Path: path, Status: LoadInvalid, Err: fmt.Errorf("failed to unmarshal JSON: %w", err)}
	}

	return LoadReport{Path: path, Status: LoadOK}
}
