package glossary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates no glossary exists for the requested domain.
var ErrNotFound = errors.New("glossary not found")

// Source loads the glossary for a domain from a backing store.
type Source interface {
	Load(domain string) (Glossary, error)
}

// FileSource reads glossaries from <dir>/<domain>.json.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Load(domain string) (Glossary, error) {
	// Reject path separators so a domain can never escape the glossary dir.
	if domain != filepath.Base(domain) {
		return nil, fmt.Errorf("invalid glossary domain: %q", domain)
	}

	path := filepath.Join(s.dir, domain+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("domain %q: %w", domain, ErrNotFound)
		}
		return nil, fmt.Errorf("read glossary %s: %w", path, err)
	}

	g, err := parseGlossary(data)
	if err != nil {
		return nil, fmt.Errorf("glossary %s: %w", path, err)
	}
	return g, nil
}

// Domains lists the domains that currently have a glossary file.
func (s *FileSource) Domains() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list glossaries: %w", err)
	}

	var domains []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		domains = append(domains, e.Name()[:len(e.Name())-len(".json")])
	}
	return domains, nil
}
