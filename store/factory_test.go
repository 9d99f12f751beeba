package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogFactory_MemoryAndFile(t *testing.T) {
	// memory
	c, err := NewCatalog("memory", "")
	require.NoError(t, err)
	require.NotNil(t, c)

	// file
	path := filepath.Join(t.TempDir(), "factory_catalog.json")
	require.NoError(t, WriteProductsFile(path, DefaultProducts()[:2]))
	c2, err := NewCatalog("file", path)
	require.NoError(t, err)
	require.NotNil(t, c2)
}

func TestNewCatalogFactory_Errors(t *testing.T) {
	_, err := NewCatalog("file", "")
	assert.Error(t, err)

	_, err = NewCatalog("redis", "")
	assert.EqualError(t, err, "unknown catalog kind: redis")
}
