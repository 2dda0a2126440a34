// Package api translates HTTP requests into service calls and service
// results into JSON responses. Authentication and capability checks happen
// in middleware before any handler runs; handlers read the resolved
// principal from the request context.
package api
