// Package http implements the HTTP handlers of the attendance dashboard API.
// Handlers stay thin: they parse query parameters into a dataprocessing.Filter,
// call the services layer and render the result.
//
// Successful responses use one envelope:
//
//	{"status": "success", "data": ..., "count": n}
//
// Failures go through internal/errors.ErrorHandler and are rendered as
// RFC 7807 problem documents.
//
// # Filters
//
// Every view accepts the same query parameters:
//
//	from, to      ISO dates (2006-01-02), inclusive
//	department    repeatable
//	location      repeatable; "Unknown" selects employees without a location
package http
