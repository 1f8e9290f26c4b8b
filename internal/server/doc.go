// Package server exposes the record collection over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally, registering method qualified patterns.
//
// # Record API
//
// [RecordHandler] serves:
//
//	GET    /record/             list every record
//	POST   /record/             create a record (201)
//	GET    /record/{id}         fetch one record
//	PATCH  /record/{id}         replace all three fields
//	DELETE /record/{id}         delete one record
//	POST   /record/bulk-delete  delete every id in {"ids": [...]}
//	POST   /record/upload-excel import the spreadsheet in multipart field "file"
//
// Failures are logged and returned as {"error": "...", "code": "..."} with the status from [shared.Classify].
//
// # Middleware
//
// [AccessLog], [Metrics] and [RateLimit] wrap every route. [CORS] wraps the router as a whole.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
