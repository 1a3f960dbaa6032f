// Package storage provides the durable key/value stores that back user
// preferences: an in-memory map, a JSON file, and a SQLite database.
//
// Keys and values are plain strings. Callers decide how to encode structured
// values; the stores never interpret them.
package storage
