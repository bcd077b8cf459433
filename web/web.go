// Package web embeds the HTML templates the handlers render.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
