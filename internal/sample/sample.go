// Package sample ships the example documents used to try the converter
// without an editor at hand.
package sample

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

//go:embed data/*.json
var files embed.FS

const Default = "lists"

func Names() []string {
	entries, err := fs.ReadDir(files, "data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func Load(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	data, err := files.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("sample %q: %w", name, appErr.ErrSampleNotFound)
	}
	return data, nil
}
