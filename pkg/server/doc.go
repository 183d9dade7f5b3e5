// Package server exposes label placement and chart rendering over HTTP.
//
// # Endpoints
//
//	GET  /healthz        liveness check with build info
//	POST /v1/place       place one label on an arc segment
//	POST /v1/render      render a hierarchy (query: format, style, viz, ...)
//
// Every response carries an X-Request-ID header. A client-supplied UUID in
// that header is echoed; anything else is replaced by a fresh one.
//
// Errors are JSON objects with the machine-readable code from pkg/errors:
//
//	{"error": {"code": "INVALID_SEGMENT", "message": "inner radius 10 exceeds outer radius 5"}, "request_id": "..."}
//
// Invalid segments map to 422 Unprocessable Entity, other validation
// failures to 400, oversized bodies to 413.
package server
