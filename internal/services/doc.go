// Package services implements [RecordService], the client side of the record API.
//
// [RecordClient] issues one HTTP request per operation. It does not retry and does not cache:
// callers merge each response into their own state.
//
// # Error Handling
//
// Transport failures wrap [shared.ErrServiceUnavailable]. Non-2xx responses come back as
// [*APIError], which matches [shared.ErrAPIRequest] and the sentinel for its error code:
//
//	_, err := client.Get(ctx, id)
//	if errors.Is(err, shared.ErrRecordNotFound) {
//		// 404
//	}
package services
