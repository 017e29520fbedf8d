// Package dataroot resolves the fixed on-disk layout the manual download step
// is expected to produce: one root directory holding the three LNB category
// folders. Resolution is all-or-nothing; a missing folder is reported with a
// typed error naming the exact path.
package dataroot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"kartoteka/internal/config"
)

// Folder names as delivered by the cloud export. These are contractual; the
// resolver never guesses alternatives.
const (
	FolderUsage     = "Digitālās bibliotēkas lietojums"
	FolderContent   = "Digitālās bibliotēkas saturs"
	FolderCriticism = "Mākslu kritika"
)

// Category is one resolved data collection.
type Category struct {
	// Key is the stable identifier used in config, logs and reports.
	Key string
	// Folder is the Latvian folder name under the root.
	Folder string
	// Path is the absolute folder path.
	Path string
}

// Root is a fully resolved dataset root. Immutable once returned.
type Root struct {
	Path       string
	Categories [3]Category
}

// MissingRootError reports a dataset root that does not exist or is not a
// readable directory.
type MissingRootError struct {
	Path string
	Err  error
}

func (e *MissingRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data root %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("data root %s does not exist; download the three data folders into it first", e.Path)
}

func (e *MissingRootError) Unwrap() error { return e.Err }

// MissingCategoryError reports one required category folder absent under an
// otherwise valid root.
type MissingCategoryError struct {
	Key    string
	Folder string
	Path   string
}

func (e *MissingCategoryError) Error() string {
	return fmt.Sprintf("category folder %q (%s) missing at %s", e.Folder, e.Key, e.Path)
}

// Resolve verifies the root and all three category folders exist and returns
// the resolved handles. Filesystem access is read-only. The first missing
// category aborts resolution; a partially resolved root is never returned.
func Resolve(rootPath string) (*Root, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingRootError{Path: rootPath}
		}
		return nil, &MissingRootError{Path: rootPath, Err: err}
	}
	if !info.IsDir() {
		return nil, &MissingRootError{Path: rootPath, Err: fmt.Errorf("not a directory")}
	}

	root := &Root{Path: rootPath}
	for i, spec := range categorySpecs() {
		path := filepath.Join(rootPath, spec.Folder)
		if err := checkDir(path); err != nil {
			return nil, &MissingCategoryError{Key: spec.Key, Folder: spec.Folder, Path: path}
		}
		root.Categories[i] = Category{Key: spec.Key, Folder: spec.Folder, Path: path}
	}
	return root, nil
}

// Category returns the resolved category for the given key.
func (r *Root) Category(key string) (Category, bool) {
	for _, cat := range r.Categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}

func categorySpecs() [3]Category {
	return [3]Category{
		{Key: config.CategoryUsage, Folder: FolderUsage},
		{Key: config.CategoryContent, Folder: FolderContent},
		{Key: config.CategoryCriticism, Folder: FolderCriticism},
	}
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fs.ErrNotExist
	}
	return nil
}
