package discovery

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esstools/essready/internal/errors"
)

// inventoryFile is the on-disk shape of a YAML inventory.
type inventoryFile struct {
	Instances []Instance `yaml:"instances"`
}

// InventoryProvider reads instances from a YAML inventory file. It is the
// portable discovery path; the IIS enumerator produces the same file shape
// on Windows hosts.
type InventoryProvider struct {
	Path string
}

// NewInventoryProvider creates a provider for the given inventory file path.
func NewInventoryProvider(path string) *InventoryProvider {
	return &InventoryProvider{Path: path}
}

// Discover loads and validates the inventory file.
func (p *InventoryProvider) Discover(ctx context.Context) ([]Instance, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, errors.NewDiscoveryUnavailableError(err)
	}

	var file inventoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewInventoryInvalidError(p.Path, err)
	}

	for i, inst := range file.Instances {
		if inst.ApplicationPath == "" {
			return nil, errors.NewInventoryInvalidError(p.Path,
				fmt.Errorf("instance %d has no application_path", i))
		}
	}

	return file.Instances, nil
}
