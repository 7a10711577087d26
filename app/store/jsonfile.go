package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/pkg/logger"
	"github.com/kalakaksh/backend/pkg/metrics"
)

const (
	artisansFile = "artisans.json"
	productsFile = "products.json"
)

// JSONStore keeps each collection in one flat JSON file under dir.
// Writes go to a temp file in the same directory and are renamed into
// place, so readers never observe a half-written file.
type JSONStore struct {
	dir string
}

// NewJSONStore returns a store rooted at dir. The directory is created
// lazily on first save.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) LoadArtisans() ([]models.Artisan, error) {
	defer metrics.ObserveStoreOp("load", "artisans", time.Now())

	var artisans []models.Artisan
	if err := s.load(artisansFile, &artisans); err != nil {
		if errors.Is(err, errCorrupt) {
			return []models.Artisan{}, nil
		}
		return nil, err
	}
	return artisans, nil
}

func (s *JSONStore) SaveArtisans(artisans []models.Artisan) error {
	defer metrics.ObserveStoreOp("save", "artisans", time.Now())

	if artisans == nil {
		artisans = []models.Artisan{}
	}
	return s.save(artisansFile, artisans)
}

func (s *JSONStore) LoadProducts() ([]models.Product, error) {
	defer metrics.ObserveStoreOp("load", "products", time.Now())

	var products []models.Product
	if err := s.load(productsFile, &products); err != nil {
		if errors.Is(err, errCorrupt) {
			return []models.Product{}, nil
		}
		return nil, err
	}
	return products, nil
}

func (s *JSONStore) SaveProducts(products []models.Product) error {
	defer metrics.ObserveStoreOp("save", "products", time.Now())

	if products == nil {
		products = []models.Product{}
	}
	return s.save(productsFile, products)
}

// errCorrupt marks a collection file that exists but does not parse.
// Reads treat it as an empty collection; the callers discard any
// partially decoded data.
var errCorrupt = errors.New("corrupt collection file")

// load reads the collection file into dest. A missing or unparseable file
// is an empty collection, not a fatal error.
func (s *JSONStore) load(name string, dest interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store/json: read %s: %w", name, err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("store/json: unparseable collection treated as empty",
			"file", name, "error", err)
		return errCorrupt
	}
	return nil
}

func (s *JSONStore) save(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store/json: mkdir %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store/json: marshal %s: %w", name, err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("store/json: temp %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store/json: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store/json: close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store/json: rename %s: %w", name, err)
	}
	return nil
}
