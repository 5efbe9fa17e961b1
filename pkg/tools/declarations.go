package tools

import (
	"encoding/json"

	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
)

const searchDescription = `Search UniProt protein databases with field-based queries.

Query syntax supports field-qualified terms and boolean operators, for
example 'insulin AND organism_id:9606', 'gene:BRCA1', 'accession:P62988',
'reviewed:true AND length:[100 TO 500]'. A bare term searches all fields.

Databases: uniprotkb (default, curated and unreviewed protein entries),
uniparc (sequence archive), uniref (clustered sets).

Results are paginated. Each response holds up to 'limit' entries (default
10, maximum 100) and, when more may be available, a 'nextCursor' value to
pass as 'cursor' on the following call. Use 'fields' to restrict the
returned columns (e.g. accession, id, gene_names, organism_name, length;
see https://www.uniprot.org/help/return_fields) and 'format' to choose
between 'toon' (default, token-compact text) and 'json'.`

const fetchDescription = `Fetch specific protein entries by identifier.

Accepts a list of identifiers for the selected database, for example
UniProtKB accessions like P01308 or Q9Y6K9, UniParc UPIs, or UniRef
cluster ids. Each identifier is resolved independently: entries that
exist are returned in 'results', and identifiers that could not be
resolved are reported per item without failing the batch.

Use 'fields' to restrict the returned columns and 'format' to choose
between 'toon' (default, token-compact text) and 'json'. The response
reports 'found' and 'requested' counts alongside the entries.`

var searchToolDecl = protocol.Tool{
	Name:        SearchToolName,
	Description: searchDescription,
	Categories:  []string{"uniprot"},
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "Search query using UniProt query syntax"
			},
			"database": {
				"type": "string",
				"enum": ["uniprotkb", "uniparc", "uniref"],
				"default": "uniprotkb",
				"description": "Database to search"
			},
			"limit": {
				"type": "integer",
				"minimum": 1,
				"maximum": 100,
				"default": 10,
				"description": "Maximum number of results per page"
			},
			"fields": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Fields to include in each result"
			},
			"cursor": {
				"type": "string",
				"description": "Opaque pagination cursor from a previous response"
			},
			"format": {
				"type": "string",
				"enum": ["toon", "json"],
				"default": "toon",
				"description": "Response format"
			}
		},
		"required": ["query"]
	}`),
}

var fetchToolDecl = protocol.Tool{
	Name:        FetchToolName,
	Description: fetchDescription,
	Categories:  []string{"uniprot"},
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"ids": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1,
				"description": "Identifiers to fetch"
			},
			"database": {
				"type": "string",
				"enum": ["uniprotkb", "uniparc", "uniref"],
				"default": "uniprotkb",
				"description": "Database to fetch from"
			},
			"fields": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Fields to include in each result"
			},
			"format": {
				"type": "string",
				"enum": ["toon", "json"],
				"default": "toon",
				"description": "Response format"
			}
		},
		"required": ["ids"]
	}`),
}
