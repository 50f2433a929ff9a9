package api

import (
	"encoding/json"

	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/store"
)

// SystemSections are the system-management areas exposing a uniform list
// endpoint.
var SystemSections = []string{"user", "role", "menu", "dept", "post", "notice"}

// SystemList binds the list endpoint of one system-management section.
func SystemList(c *rest.Client, section string) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/system/"+section+"/list")
}
