package catalogue_test

import (
	"os"
	"path/filepath"
	"testing"

	"workplans/internal/adapters/out/catalogue"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogue = `
catalogue:
  lims_id: SQSC
  url: http://sequencescape.example.com/jobs
  products:
    - id: 1f0d1b9e-5c9f-4a3a-9c5f-0cf4f2f6f6a1
      name: Whole Genome Sequencing
      version: 2
      availability: true
      processes:
        - id: 2c2e8a58-1111-4e0e-9c1a-0cf4f2f6f6a2
          name: QC
          stage: 0
          modules:
            - id: 3b3f9b69-2222-4f1f-8d2b-0cf4f2f6f6a3
              name: Quantification
            - id: 4c4fac7a-3333-4020-9e3c-0cf4f2f6f6a4
              name: Genotyping CGP SNP
        - id: 5d5fbd8b-4444-4131-af4d-0cf4f2f6f6a5
          name: Library Prep
          stage: 1
    - id: 6e6fce9c-5555-4242-b05e-0cf4f2f6f6a6
      name: Retired Product
      version: 1
      availability: false
`

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogue.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileRepository(t *testing.T) {
	t.Run("LoadsProductsWithProcessesAndModules", func(t *testing.T) {
		repo, err := catalogue.NewFileRepository(writeCatalogue(t, testCatalogue))
		require.NoError(t, err)

		id, err := kernel.UUIDFromString("1f0d1b9e-5c9f-4a3a-9c5f-0cf4f2f6f6a1")
		require.NoError(t, err)
		product, err := repo.GetProduct(t.Context(), id)
		require.NoError(t, err)

		assert.Equal(t, "Whole Genome Sequencing", product.Name)
		assert.Equal(t, 2, product.Version)
		assert.Equal(t, "SQSC", product.Catalogue.LIMSID)
		assert.True(t, product.FromSequencescape())
		require.Len(t, product.Processes, 2)
		assert.Equal(t, "QC", product.Processes[0].Name)
		assert.Equal(t, 0, product.Processes[0].Stage)
		require.Len(t, product.Processes[0].Modules, 2)
		assert.Equal(t, "Genotyping CGP SNP", product.Processes[0].Modules[1].Name)
		assert.Empty(t, product.Processes[1].Modules)
	})

	t.Run("AvailableProductsExcludesRetired", func(t *testing.T) {
		repo, err := catalogue.NewFileRepository(writeCatalogue(t, testCatalogue))
		require.NoError(t, err)

		available, err := repo.GetAvailableProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "Whole Genome Sequencing", available[0].Name)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		repo, err := catalogue.NewFileRepository(writeCatalogue(t, testCatalogue))
		require.NoError(t, err)

		_, err = repo.GetProduct(t.Context(), kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := catalogue.NewFileRepository(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		_, err := catalogue.NewFileRepository(writeCatalogue(t, "catalogue: ["))
		require.Error(t, err)
	})

	t.Run("InvalidProductID", func(t *testing.T) {
		_, err := catalogue.NewFileRepository(writeCatalogue(t, `
catalogue:
  lims_id: SQSC
  url: http://example.com
  products:
    - id: not-a-uuid
      name: Broken
      version: 1
      availability: true
`))
		require.Error(t, err)
	})
}
