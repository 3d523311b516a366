// Package shift defines raw shift records, wage rates, and the enrichment
// step that derives hours, day keys, and earnings from them.
//
// Enrichment is a pure transformation: a raw record plus a rate table yields
// an Enriched value. Records with missing or unparseable clock stamps enrich
// to zero hours with an empty day key so they still appear in raw listings
// but drop out of every aggregation. Rates join to records by trimmed,
// lowercased position label; a position without a matching rate earns the
// configured default amount (zero unless overridden), never an error.
package shift
