package transducer

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed transducers.json
var catalogJSON []byte

// The measured-transducer table is loaded once on first use and read-only
// afterwards; sync.Once keeps the load race-free under concurrent access.
var (
	catalogOnce sync.Once
	catalog     map[string]Transducer
	catalogErr  error
)

func loadCatalog() {
	catalogOnce.Do(func() {
		catalog, catalogErr = Load(bytes.NewReader(catalogJSON))
	})
}

// Predefined returns a measured transducer from the built-in table by name.
func Predefined(name string) (Transducer, error) {
	loadCatalog()
	if catalogErr != nil {
		return Transducer{}, catalogErr
	}

	td, ok := catalog[name]
	if !ok {
		return Transducer{}, fmt.Errorf("transducer %q not found, available: %s",
			name, strings.Join(sortedNames(), ", "))
	}
	return td, nil
}

// Names lists the predefined transducer names, sorted alphabetically.
func Names() ([]string, error) {
	loadCatalog()
	if catalogErr != nil {
		return nil, catalogErr
	}
	return sortedNames(), nil
}

func sortedNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
