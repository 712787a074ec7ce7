// Package httputil provides JSON request and response helpers for the
// dutyflow HTTP API.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps a
// structured error to its HTTP status with [errors.HTTPStatus] and writes
// an [ErrorBody]:
//
//	{"error": {"code": "INVALID_LOCK", "message": "unknown person: ADAMS"}}
//
// Internal errors are reported with a generic message so that causes such
// as file paths or driver errors do not leak to clients.
//
// # Requests
//
// [DecodeJSON] reads a bounded request body and rejects unknown fields and
// trailing data, answering with INVALID_FORMAT.
//
// # Middleware
//
// [RequestID] tags each request with a UUID, echoed in the X-Request-ID
// header. [Observe] reports method, route, status and latency to the
// registered [observability.HTTPHooks].
package httputil
