// Package assets embeds the page templates, email bodies and framework
// question content shipped with the server.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed templates content
var files embed.FS

// Templates holds layout.html, the page templates and emails/.
func Templates() fs.FS {
	return sub("templates")
}

// Content holds frameworks/{framework}/ manifests, questions and messages.
func Content() fs.FS {
	return sub("content")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// Only reachable if the embed directive above changes.
		panic(err)
	}
	return f
}
