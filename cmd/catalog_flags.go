package cmd

import (
	"os"

	"github.com/jingjai/verifier/internal/catalog"
)

// loadCatalog resolves the catalog provider shared by subcommands:
// an explicit YAML file wins, then a remote backend, then the builtin
// product list.
func loadCatalog(catalogPath, backendURL string) (catalog.Provider, error) {
	if catalogPath == "" {
		catalogPath = os.Getenv("VERIFIER_CATALOG")
	}
	if catalogPath != "" {
		return catalog.LoadFile(catalogPath)
	}

	if backendURL == "" {
		backendURL = os.Getenv("VERIFIER_BACKEND_URL")
	}
	if backendURL != "" {
		return catalog.NewClient(backendURL, os.Getenv("VERIFIER_BACKEND_KEY")).FetchCatalog()
	}

	return catalog.Builtin(), nil
}
