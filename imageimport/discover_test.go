package imageimport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestBuildPlanSequencesByNaturalOrder(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "Lavender Soap")
	for _, name := range []string{"b.jpg", "a.png", "c10.jpg", "c2.jpg"} {
		touch(t, filepath.Join(folder, name))
	}

	plan, err := BuildPlan(root, "products")
	require.NoError(t, err)
	require.Len(t, plan.Images, 4)

	// a.png gets sequence 01 and c2 sorts before c10.
	assert.Equal(t, "a.png", filepath.Base(plan.Images[0].SourcePath))
	assert.Equal(t, "01", plan.Images[0].Sequence)
	assert.Equal(t, "products/lavender-soap/lavender-soap-01.webp", plan.Images[0].StoragePath)

	assert.Equal(t, "c2.jpg", filepath.Base(plan.Images[2].SourcePath))
	assert.Equal(t, "c10.jpg", filepath.Base(plan.Images[3].SourcePath))
	assert.Equal(t, "04", plan.Images[3].Sequence)
}

func TestBuildPlanSkipsHiddenAndNonImage(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "Candle")
	touch(t, filepath.Join(folder, "keep.webp"))
	touch(t, filepath.Join(folder, ".hidden.jpg"))
	touch(t, filepath.Join(folder, "notes.txt"))
	touch(t, filepath.Join(folder, "nested", "extra.jpeg"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	plan, err := BuildPlan(root, "products")
	require.NoError(t, err)

	assert.Len(t, plan.Images, 2)
	assert.Equal(t, 1, plan.Stats.SkippedHidden)
	assert.Equal(t, 1, plan.Stats.SkippedNonImage)
	assert.Len(t, plan.Folders, 1)
}

func TestListProductFoldersSlugCollisionIsFatal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Lavender Soap"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lavender-soap"), 0o755))

	_, err := ListProductFolders(root)
	assert.ErrorContains(t, err, "folder slug collision")
}

func TestAppendFolderImagesRejectsDuplicateDestination(t *testing.T) {
	plan := &Plan{}
	seen := map[string]bool{}
	folder := Folder{Name: "Soap", Slug: "soap"}

	require.NoError(t, appendFolderImages(plan, folder, []string{"/src/a.jpg"}, "products", seen))

	// A second pass over the same folder computes the same destination.
	err := appendFolderImages(plan, folder, []string{"/other/b.jpg"}, "products", seen)
	assert.ErrorContains(t, err, "duplicate storage path")
}

func TestBuildPlanEmptySourceIsConfigurationError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Empty Folder"), 0o755))

	_, err := BuildPlan(root, "products")
	assert.ErrorContains(t, err, "no image files discovered")

	_, err = BuildPlan(filepath.Join(root, "does-not-exist"), "products")
	assert.ErrorContains(t, err, "source directory does not exist")
}
