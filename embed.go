// Package portal embeds the content and static assets shipped in the binary.
package portal

import "embed"

// ContentFS holds the bilingual destination and legal pages as markdown.
//
//go:embed content
var ContentFS embed.FS

// StaticFS holds the stylesheet, scripts and images served under /assets/.
//
//go:embed static
var StaticFS embed.FS
