// Package config applies declarative per-logger settings to a Registry.
//
// Apply consumes the canonical form, a map from logger name to
// Descriptor. LoadTOML produces that form from a TOML document, resolving
// presenter, dispatcher and transformer names through a Catalog:
//
//	[loggers._root]
//	level = "warn"
//
//	[[loggers._root.pipelines]]
//	presenter = "text"
//	dispatcher = "stderr"
//
//	[loggers."app.db"]
//	level = "debug"
//	propagate = false
//
//	[[loggers."app.db".pipelines]]
//	presenter = "json"
//	dispatcher = "file:/var/log/app/db.log"
//	transformers = ["record_id"]
//	async = true
//
//	[loggers."app.db".pipelines.config]
//	color = false
package config
