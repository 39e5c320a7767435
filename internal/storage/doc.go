// Package storage loads and saves the task collection.
//
// File keeps the whole collection in one JSON file. Load reads and validates
// the entire file against the embedded JSON Schema (draft 2020-12) and
// rejects duplicate ids; anything it cannot trust is reported as a
// CorruptError and never partially recovered. Save rewrites the entire file
// with 2-space indentation and a trailing newline.
//
// There is no file locking. When two invocations run at the same time the
// last one to save wins and the other update is lost.
//
// Memory is an in-memory backend with the same Load/Save contract.
package storage
