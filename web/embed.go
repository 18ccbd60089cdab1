package web

import "embed"

//go:embed index.html
var Static embed.FS
