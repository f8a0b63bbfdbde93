package embed

import "embed"

// DistFS holds the stylesheet and boot script served under /_deck/.
//
//go:embed all:dist
var DistFS embed.FS
