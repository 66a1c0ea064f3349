package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spoiler-storefront/internal/domain"
)

// StorageKey is the fixed key the serialized cart is persisted under. Cart
// contents must survive a restart and this file is the sole source of truth
// between sessions on the same device.
const StorageKey = "spoiler-cart"

// File persists the cart line array as JSON in a directory, keyed by
// StorageKey.
type File struct {
	path string
}

func NewFile(dir string) *File {
	return &File{path: filepath.Join(dir, StorageKey+".json")}
}

// Save writes the lines atomically (temp file + rename).
func (f *File) Save(lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart: encode state: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cart: write state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("cart: publish state: %w", err)
	}
	return nil
}

// Load reads the persisted lines; a missing file is an empty cart, not an
// error.
func (f *File) Load() ([]domain.CartLine, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cart: read state: %w", err)
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("cart: decode state: %w", err)
	}
	return lines, nil
}
