// Package server exposes command.Execute over HTTP — the sanctioned
// "command surface" transport spec.md §6 names, not the excluded
// browser/editor UI. Routing is github.com/gorilla/mux, request
// logging is go.uber.org/zap, and GET /metrics carries Prometheus
// counters/histograms, generalizing the teacher's
// cmd/web/web.go REST-handler-per-verb layout from a hardcoded
// "tasks" table to the generic command surface.
package server
