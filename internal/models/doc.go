// Package models defines the employee record entity and the persistence contract for the roster service.
//
// The package contains three categories of types:
//
// 1. Entities
//   - [Record] : one employee entry (name, position, level) identified by a store-assigned id
//   - [RecordFields] : the three mutable fields, used for create, replace and import
//
// 2. Store results, shaped after document-store acknowledgements
//   - [InsertResult], [UpdateResult], [DeleteResult], [BulkDeleteResult]
//
// 3. Persistence
//   - [RecordStore] : the backend contract implemented by the SQLite, Mongo and memory repositories
//
// Identifiers are opaque strings whose syntax belongs to the backend; see [RecordStore.ParseID].
package models
