// Package config handles application configuration and settings
// validation.
//
// The input document carries the authoritative render, routing and
// serialization settings; an optional config.yml may supply a default
// serialization file path for documents that omit the section.
// Settings structs are validated with go-playground/validator struct
// tags after parsing.
package config
