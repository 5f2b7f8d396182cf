// Package phonebook provides embedded runtime resources.
package phonebook

import _ "embed"

// ExampleConfig is the annotated default configuration file.
//
//go:embed config.example.yaml
var ExampleConfig []byte
