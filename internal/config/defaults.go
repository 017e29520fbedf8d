package config

const (
	defaultDataRoot   = "./data"
	defaultCleanedDir = "./data/cleaned"
	defaultLogDir     = "~/.local/share/kartoteka/logs"
	defaultCatalogDir = "~/.local/share/kartoteka/catalog"
	defaultWorkers    = 1
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	// maxWorkers caps the scan pool; there are only three category folders
	// so anything beyond that is wasted.
	maxWorkers = 8
)

// Default returns a Config populated with repository defaults. No schema rules
// are enforced unless the user configures them.
func Default() Config {
	return Config{
		Paths: Paths{
			DataRoot:   defaultDataRoot,
			CleanedDir: defaultCleanedDir,
			LogDir:     defaultLogDir,
			CatalogDir: defaultCatalogDir,
		},
		Scan: Scan{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
