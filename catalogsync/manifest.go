package catalogsync

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/imageimport"
)

// LoadManifest reads the image-import manifest; the sync cannot run
// without it.
func LoadManifest(path string) ([]imageimport.ManifestRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, httperr.Wrap(httperr.KindNotFound, err, "manifest file not found: %s", path)
	}
	var rows []imageimport.ManifestRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, httperr.Wrap(httperr.KindConfiguration, err, "manifest is not valid JSON: %s", path)
	}
	return rows, nil
}

// PrimaryImageMap picks each folder's representative image: the row with
// the lowest sequence, preferring an explicit "01".
func PrimaryImageMap(rows []imageimport.ManifestRow) map[string]string {
	byFolder := make(map[string][]imageimport.ManifestRow)
	for _, row := range rows {
		if row.FolderSlug == "" || row.PublicURL == "" || row.Sequence == "" {
			continue
		}
		byFolder[row.FolderSlug] = append(byFolder[row.FolderSlug], row)
	}

	primary := make(map[string]string, len(byFolder))
	for slug, group := range byFolder {
		sort.Slice(group, func(i, j int) bool {
			a, _ := strconv.Atoi(group[i].Sequence)
			b, _ := strconv.Atoi(group[j].Sequence)
			return a < b
		})
		chosen := group[0]
		for _, row := range group {
			if row.Sequence == "01" {
				chosen = row
				break
			}
		}
		primary[slug] = chosen.PublicURL
	}
	return primary
}
