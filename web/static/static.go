// Package static embeds the default product feed and the stylesheet served by the
// storefront.
package static

import (
	"embed"
	"io/fs"
)

// FeedFile is the name the default product feed is served under.
const FeedFile = "products.json"

//go:embed products.json styles.css
var files embed.FS

// FS exposes the embedded assets.
func FS() fs.FS {
	return files
}

// Feed returns the embedded product feed.
func Feed() []byte {
	data, err := files.ReadFile(FeedFile)
	if err != nil {
		panic(err)
	}
	return data
}
