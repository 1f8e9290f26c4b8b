// Package repositories implements the record store gateway and its persistence backends.
//
// The [Gateway] sits in front of a [models.RecordStore] and owns the behavior shared by every backend:
//   - identifier parsing, so a malformed id is rejected before any store call
//   - bulk delete partitioning, either skipping malformed ids or rejecting the whole batch
//   - error translation onto the shared record taxonomy
//
// Backends:
//   - [SQLiteRecordRepository] : default backend, uuid ids, insertion order kept by a sequence table
//   - [MongoRecordRepository] : document collection addressed by ObjectID hex strings
//   - [MemoryRecordRepository] : process-local map, for development and tests
//
// Sequence numbers provide stable insertion ordering for the SQLite backend independent of the random ids.
// The [NextSequence] function increments the per-table counter inside the caller's transaction.
package repositories
