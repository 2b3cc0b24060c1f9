//go:build tools

package tools

// Track CLI tooling used by this repo's workflows.
import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
