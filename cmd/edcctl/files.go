package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"

	"github.com/c360studio/edcclient/catalog"
)

// stdinPath names standard input in file arguments.
const stdinPath = "-"

// expandInputs resolves glob patterns, including ** segments, to file paths.
// Arguments without glob metacharacters are kept as given so a missing file
// surfaces as a read error. Duplicates are dropped.
func expandInputs(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if pattern == stdinPath || !hasMeta(pattern) {
			paths = appendUnique(paths, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			paths = appendUnique(paths, m)
		}
	}
	return paths, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func appendUnique(paths []string, p string) []string {
	if slices.Contains(paths, p) {
		return paths
	}
	return append(paths, p)
}

// readDocument reads a JSON document that may carry comments and trailing
// commas.
func readDocument(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return jsonc.ToJSON(data), nil
}

// readCatalog decodes a catalog response saved to path.
func readCatalog(path string, stdin io.Reader) (*catalog.Catalog, error) {
	data, err := readDocument(path, stdin)
	if err != nil {
		return nil, err
	}
	var c catalog.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}
