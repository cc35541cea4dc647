package imageimport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/textkit"
)

var imageExtensions = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".avif": true,
}

// DiscoveryStats counts what discovery skipped; skips are reported, not
// errors.
type DiscoveryStats struct {
	SkippedHidden   int
	SkippedNonImage int
}

// Plan is everything discovery decided before any image is touched.
type Plan struct {
	Folders []Folder
	Images  []SourceImage
	Stats   DiscoveryStats
}

// ListProductFolders enumerates the immediate subdirectories of sourceRoot
// in natural order, slugifying each name. Two folders normalising to the
// same slug is a configuration error: processing cannot start.
func ListProductFolders(sourceRoot string) ([]Folder, error) {
	entries, err := os.ReadDir(sourceRoot)
	if err != nil {
		return nil, httperr.Wrap(httperr.KindConfiguration, err, "source directory does not exist: %s", sourceRoot)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool { return textkit.Less(names[i], names[j]) })

	folders := make([]Folder, 0, len(names))
	slugOwner := make(map[string]string)
	for _, name := range names {
		slug := textkit.Slugify(name)
		if owner, taken := slugOwner[slug]; taken && owner != name {
			return nil, httperr.New(httperr.KindConfiguration,
				"folder slug collision: %q and %q both normalize to %q", owner, name, slug)
		}
		slugOwner[slug] = name
		folders = append(folders, Folder{
			Name: name,
			Path: filepath.Join(sourceRoot, name),
			Slug: slug,
		})
	}
	return folders, nil
}

// collectImageFiles walks directory recursively and returns image files
// sorted by base name (natural order), full path as the tie-break. Hidden
// entries and non-image files are counted and skipped.
func collectImageFiles(directory string, stats *DiscoveryStats) ([]string, error) {
	var files []string

	var walk func(current string) error
	walk = func(current string) error {
		entries, err := os.ReadDir(current)
		if err != nil {
			return err
		}
		sort.Slice(entries, func(i, j int) bool {
			return textkit.Less(entries[i].Name(), entries[j].Name())
		})

		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") {
				stats.SkippedHidden++
				continue
			}
			full := filepath.Join(current, entry.Name())
			if entry.IsDir() {
				if err := walk(full); err != nil {
					return err
				}
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if !imageExtensions[ext] {
				stats.SkippedNonImage++
				continue
			}
			files = append(files, full)
		}
		return nil
	}

	if err := walk(directory); err != nil {
		return nil, httperr.Wrap(httperr.KindConfiguration, err, "failed to read source folder: %s", directory)
	}

	sort.Slice(files, func(i, j int) bool {
		a, b := filepath.Base(files[i]), filepath.Base(files[j])
		if c := textkit.Compare(a, b); c != 0 {
			return c < 0
		}
		return textkit.Less(files[i], files[j])
	})
	return files, nil
}

// BuildPlan discovers all folders and files and assigns storage paths.
// Duplicate destinations abort the whole run before anything is processed.
func BuildPlan(sourceRoot, prefix string) (*Plan, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil || !info.IsDir() {
		return nil, httperr.New(httperr.KindConfiguration, "source directory does not exist: %s", sourceRoot)
	}

	folders, err := ListProductFolders(sourceRoot)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Folders: folders}
	seenPaths := make(map[string]bool)

	for _, folder := range folders {
		files, err := collectImageFiles(folder.Path, &plan.Stats)
		if err != nil {
			return nil, err
		}
		if err := appendFolderImages(plan, folder, files, prefix, seenPaths); err != nil {
			return nil, err
		}
	}

	if len(plan.Images) == 0 {
		return nil, httperr.New(httperr.KindConfiguration, "no image files discovered under the source directory")
	}
	return plan, nil
}

// appendFolderImages assigns sequences and destinations for one folder's
// files. A destination already claimed anywhere in the run is fatal: the
// import must not start when it could overwrite its own output.
func appendFolderImages(plan *Plan, folder Folder, files []string, prefix string, seenPaths map[string]bool) error {
	for i, file := range files {
		sequence := fmt.Sprintf("%02d", i+1)
		storagePath := fmt.Sprintf("%s/%s/%s-%s.webp", prefix, folder.Slug, folder.Slug, sequence)
		if seenPaths[storagePath] {
			return httperr.New(httperr.KindConfiguration, "duplicate storage path generated: %s", storagePath)
		}
		seenPaths[storagePath] = true
		plan.Images = append(plan.Images, SourceImage{
			SourcePath:  file,
			FolderName:  folder.Name,
			FolderSlug:  folder.Slug,
			Sequence:    sequence,
			StoragePath: storagePath,
		})
	}
	return nil
}
