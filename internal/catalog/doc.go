// Package catalog talks to the external product catalog REST service and
// provides an in-memory reference implementation of that service.
//
// The REST contract:
//
//	GET    /products        → 200, array of products
//	GET    /products/{id}   → 200 product, or 404
//	POST   /products        → 201, created product
//	PUT    /products/{id}   → 204, or 404
//	DELETE /products/{id}   → 204, or 404
//
// Client wraps these calls. Service implements them for tests and local
// runs; it shares no state with the in-memory product tools.
package catalog
