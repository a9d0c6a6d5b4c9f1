// Package server exposes a Gate over HTTP.
//
// Routes:
//
//	GET  /healthz                   liveness and instance count
//	POST /instances                 load a module; body is raw wasm bytes,
//	                                or {"path": "..."} with a JSON content type
//	POST /instances/:id/call/:fn    body {"args": [..]}; responds {"value": n}
//	                                or {"value": null} for valueless calls
//	GET  /exports                   descriptor rows for all instances
//	GET  /instances/:id/exports     descriptor rows for one instance
//
// Error responses carry {"error": "..."} and a status derived from the
// error kind: unknown instances and functions are 404, argument count
// and malformed requests are 400, modules or arguments the gate cannot
// process are 422, guest faults are 500.
package server
