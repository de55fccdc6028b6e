// imagedate: input path expansion
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions defines which file types are resolved when walking directories
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".heic": true,
	".heif": true,
	".png":  true,
	".dng":  true,
	".nef":  true,
	".cr2":  true,
	".arw":  true,
}

func isImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// collectFiles expands the given paths into the files to resolve. Files named
// explicitly are always resolved, even if they do not exist, so that the
// resolver reports the open failure. Directory entries are filtered by
// extension unless all is set.
func collectFiles(paths []string, recursive, all bool) (files, skipped []string, errs []error) {
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			files = append(files, root)
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %v", path, err))
				return nil // continue walking
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !all && !isImage(path) {
				skipped = append(skipped, path)
				return nil
			}
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			errs = append(errs, fmt.Errorf("%s: %v", root, walkErr))
		}
	}
	sort.Strings(skipped)
	return files, skipped, errs
}
