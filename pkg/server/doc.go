// Package server exposes the planner and session store over HTTP.
//
// # Routes
//
//	GET    /healthz
//	GET    /api/aspects
//	POST   /api/solve                           {"start", "end", "distance", "preferred", "strategy"}
//	POST   /api/plan                            {"path", "preferred", "refresh", "strategy"}
//	POST   /api/sessions                        {"path", "preferred"}
//	GET    /api/sessions/{id}
//	DELETE /api/sessions/{id}
//	PUT    /api/sessions/{id}/path              {"path"}
//	POST   /api/sessions/{id}/preferred/{aspect}
//	GET    /api/sessions/{id}/plan
//	GET    /api/graph.svg?path=a,hex,b&preferred=c&only=true
//
// # Errors
//
// Failures are returned as {"code": "...", "message": "..."} with the status
// from [errors.HTTPStatus]: 400 for invalid input, 404 for unknown sessions,
// 504 when a search exceeds the solve timeout.
package server
