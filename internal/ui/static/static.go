// Package static holds the stylesheet and chart script the dashboard page
// loads from /static/.
package static

import "embed"

//go:embed dashboard.css dashboard.js
var FS embed.FS
