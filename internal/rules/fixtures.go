// Package rules holds the fixture files the rule self-tests run on.
package rules

import (
	"embed"
	"io/fs"
)

//go:embed testdata
var Fixtures embed.FS

// FixtureDir is the directory test case file names are relative to.
const FixtureDir = "testdata"

// ReadFixture reads a fixture by its path under Fixtures.
func ReadFixture(name string) ([]byte, error) {
	return fs.ReadFile(Fixtures, name)
}
