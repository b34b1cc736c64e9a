// Package web holds the static diagram editor served at the server root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var assets embed.FS

// DistFS exposes the editor assets with dist/ stripped from their paths.
var DistFS = mustSub(assets, "dist")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
