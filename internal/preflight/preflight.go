// Package preflight runs environment checks before a scan or clean: the data
// root must be readable, the writable directories must actually be writable,
// and there must be disk space left for cleaned outputs. These are environment
// failures, distinct from data validation failures, and they abort the run.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"kartoteka/internal/config"
)

// Result captures one check outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the floor for cleaned-output disk space. The raw exports are
// tens of megabytes; half a gigabyte of headroom is plenty.
const minFreeBytes = 512 << 20

// Run executes all checks and returns their results in a fixed order.
func Run(cfg *config.Config) []Result {
	return []Result{
		checkDataRoot(cfg.Paths.DataRoot),
		checkWritable("Cleaned directory", cfg.Paths.CleanedDir),
		checkWritable("Catalog directory", cfg.Paths.CatalogDir),
		checkDiskSpace(cfg.Paths.CleanedDir),
	}
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func checkDataRoot(path string) Result {
	const name = "Data root"
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not found at %s", path)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not readable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func checkWritable(name, path string) Result {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("cannot create %s: %v", path, err)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not writable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func checkDiskSpace(path string) Result {
	const name = "Disk space"
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return Result{Name: name, Detail: fmt.Sprintf("only %d MiB free at %s", free>>20, path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d MiB free", free>>20)}
}
