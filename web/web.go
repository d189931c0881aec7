// Package web embeds the browser front-end served at the root route.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
