package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "odata", cfg.Package)
	assert.Equal(t, "model.go", cfg.Output)
	assert.Empty(t, cfg.Include)
	assert.Empty(t, cfg.Sources)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `package: crm
output: crm/model.go
sources:
  - metadata.xml
imports:
  - import "time"
include:
  - NS.Customer
  - /Order/
exclude:
  - NS.Customer.Secret
api_context_name: CrmContext
api_context_base: BaseClient
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "odatagen.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "crm", cfg.Package)
	assert.Equal(t, "crm/model.go", cfg.Output)
	assert.Equal(t, []string{"metadata.xml"}, cfg.Sources)
	assert.Equal(t, []string{`import "time"`}, cfg.Imports)
	assert.Equal(t, []string{"NS.Customer", "/Order/"}, cfg.Include)
	assert.Equal(t, []string{"NS.Customer.Secret"}, cfg.Exclude)
	assert.Equal(t, "CrmContext", cfg.APIContextName)
	assert.Equal(t, "BaseClient", cfg.APIContextBase)
}

func TestLoadRejectsEmptyPackage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "odatagen.yaml"), []byte("package: \"\"\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package")
}
