// Package seed embeds the starting marketplace collections.
package seed

import "embed"

//go:embed *.json
var Files embed.FS
