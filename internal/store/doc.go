// Package store holds the current generation of property records in memory.
//
// A generation is the complete record set produced by one successful ingest.
// ReplaceAll is the only mutation: it swaps the whole generation in one
// exclusive section, so concurrent readers always observe either the previous
// generation or the new one, never a mix. There is no persistence — state is
// lost on shutdown, exactly as the upload contract promises.
package store
