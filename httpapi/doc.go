// Package httpapi serves pet-care resource searches as JSON.
//
// Routes:
//
//	GET /health
//	GET /api/categories
//	GET /api/categories/{category}/resources?lat=&lng=&q=
package httpapi
