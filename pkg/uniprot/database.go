// Package uniprot provides clients for the UniProt REST API, one per
// database, behind a common interface. Search results arrive as lazy,
// single-pass record streams suitable for cursor pagination.
package uniprot

import (
	"strings"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
)

// Database identifies one of the supported UniProt databases
type Database string

const (
	// DatabaseUniProtKB is the UniProt Knowledgebase: curated protein
	// sequences and annotations
	DatabaseUniProtKB Database = "uniprotkb"

	// DatabaseUniParc is the UniProt Archive: comprehensive protein
	// sequence archive
	DatabaseUniParc Database = "uniparc"

	// DatabaseUniRef is the UniProt Reference Clusters: clustered protein
	// sequences
	DatabaseUniRef Database = "uniref"
)

// DefaultDatabase is used when a request does not name a database
const DefaultDatabase = DatabaseUniProtKB

// Databases returns the closed set of supported databases
func Databases() []Database {
	return []Database{DatabaseUniProtKB, DatabaseUniParc, DatabaseUniRef}
}

// DatabaseNames returns the supported database names as strings
func DatabaseNames() []string {
	dbs := Databases()
	names := make([]string, len(dbs))
	for i, db := range dbs {
		names[i] = string(db)
	}
	return names
}

// ParseDatabase validates and normalises a database name. The comparison is
// case-insensitive; unknown names fail with an UnknownDatabase error.
func ParseDatabase(name string) (Database, error) {
	if name == "" {
		return DefaultDatabase, nil
	}
	switch Database(strings.ToLower(name)) {
	case DatabaseUniProtKB:
		return DatabaseUniProtKB, nil
	case DatabaseUniParc:
		return DatabaseUniParc, nil
	case DatabaseUniRef:
		return DatabaseUniRef, nil
	default:
		return "", mcperrors.UnknownDatabase(name, DatabaseNames())
	}
}
