// internal/web/pages.go
package web

import (
	"sort"
	"strings"
)

// Page identifies one view of the dashboard. The set is closed: navigation
// resolves to exactly one of these, with NotFound as the catch-all.
type Page string

const (
	PageHome      Page = "home"
	PageProducts  Page = "products"
	PageHistory   Page = "history"
	PageForecast  Page = "forecast"
	PageInventory Page = "inventory"
	PageScenarios Page = "scenarios"
	PagePortfolio Page = "portfolio"
	PageApproval  Page = "approval"
	PageNotFound  Page = "not_found"
)

// routes is the lookup table from navigation path to page. A table rather
// than a conditional chain keeps the mapping exhaustive and testable.
var routes = map[string]Page{
	"/":          PageHome,
	"/products":  PageProducts,
	"/history":   PageHistory,
	"/forecast":  PageForecast,
	"/inventory": PageInventory,
	"/scenarios": PageScenarios,
	"/portfolio": PagePortfolio,
	"/approval":  PageApproval,
}

// Resolve maps a navigation path to its page. Unmatched paths resolve to
// NotFound, never an error. Trailing slashes are tolerated.
func Resolve(path string) Page {
	if path == "" {
		return PageHome
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if page, ok := routes[path]; ok {
		return page
	}
	return PageNotFound
}

// Paths lists every registered navigation path in stable order.
func Paths() []string {
	paths := make([]string, 0, len(routes))
	for p := range routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// PathFor returns the navigation path for a page, or "" for NotFound.
func PathFor(page Page) string {
	for path, p := range routes {
		if p == page {
			return path
		}
	}
	return ""
}
