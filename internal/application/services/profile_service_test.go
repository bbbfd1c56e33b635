package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vision360/backend/internal/application/services"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func TestProfileService_ResolveNamedProfile(t *testing.T) {
	path := writeCatalog(t, `
default:
  mobility: none
wheelchair:
  mobility: wheelchair
  needs: [ramp]
`)

	svc, err := services.NewProfileService(path)
	assert.NoError(t, err)

	profile := svc.Resolve("wheelchair", nil)
	assert.Equal(t, "wheelchair", profile["mobility"])
}

func TestProfileService_UnknownNameFallsBackToDefault(t *testing.T) {
	path := writeCatalog(t, `
default:
  mobility: none
`)

	svc, err := services.NewProfileService(path)
	assert.NoError(t, err)

	profile := svc.Resolve("jetpack", nil)
	assert.Equal(t, "none", profile["mobility"])
}

func TestProfileService_OverrideWinsOverCatalog(t *testing.T) {
	path := writeCatalog(t, `
wheelchair:
  mobility: wheelchair
`)

	svc, err := services.NewProfileService(path)
	assert.NoError(t, err)

	override := map[string]any{"mobility": "cane"}
	profile := svc.Resolve("wheelchair", override)
	assert.Equal(t, "cane", profile["mobility"])
}

func TestProfileService_MissingFileStartsEmpty(t *testing.T) {
	svc, err := services.NewProfileService(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Empty(t, svc.Names())
	assert.Empty(t, svc.Resolve("anything", nil))
}

func TestProfileService_MalformedFileFails(t *testing.T) {
	path := writeCatalog(t, "::: not yaml {{{")

	_, err := services.NewProfileService(path)
	assert.Error(t, err)
}
