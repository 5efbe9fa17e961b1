// Package pagination implements cursor-based pagination over lazy result
// streams.
//
// Pagination state round-trips through the caller as an opaque cursor token
// that encodes a single offset. No server-side session state exists: each call
// decodes the incoming cursor, re-skips the stream prefix, collects one page
// and mints a fresh cursor for the next call. The repeated linear skip is a
// deliberate tradeoff for having zero persistent state.
//
// All functions in this package are pure, synchronous and safe for concurrent
// use. The only suspension point is RecordStream.Next, which may block on
// network I/O owned by the stream's source.
package pagination
