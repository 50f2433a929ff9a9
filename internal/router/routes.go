// Package router holds the route registry and the navigation guard that
// gates every transition behind the session state.
package router

import (
	"path"
	"strings"
)

const (
	// LoginPath is the only interactive route reachable without a token.
	LoginPath = "/login"
	// HomePath is the application root; authenticated users landing on the
	// login route are redirected here.
	HomePath = "/"
)

// Route is one node in the hierarchical route table. Some nodes are purely
// structural: grouping entries with no view of their own that exist to
// carry a redirect and shared metadata for their children.
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
	Redirect     string
	Structural   bool
	Children     []*Route
}

// Registry resolves route paths. RequiresAuth is inherited: a child of an
// authenticated subtree requires auth even without its own flag, the same
// way matched-record metadata merges in the original console.
type Registry struct {
	byPath map[string]*Route
	roots  []*Route
}

// NewRegistry builds a registry from the given top-level routes.
func NewRegistry(roots ...*Route) *Registry {
	reg := &Registry{byPath: make(map[string]*Route)}
	reg.roots = roots
	for _, r := range roots {
		reg.index(r, "", false)
	}
	return reg
}

func (reg *Registry) index(r *Route, prefix string, inheritedAuth bool) {
	full := path.Join(prefix, r.Path)
	if !strings.HasPrefix(full, "/") {
		full = "/" + full
	}

	requires := r.RequiresAuth || inheritedAuth
	resolved := &Route{
		Path:         full,
		Name:         r.Name,
		Title:        r.Title,
		RequiresAuth: requires,
		Redirect:     r.Redirect,
		Structural:   r.Structural,
	}
	reg.byPath[full] = resolved

	for _, child := range r.Children {
		reg.index(child, full, requires)
	}
}

// Lookup resolves a path to its route. The returned route carries the
// effective (inherited) RequiresAuth flag.
func (reg *Registry) Lookup(p string) (*Route, bool) {
	r, ok := reg.byPath[p]
	return r, ok
}

// Paths returns every registered path. Used by tests and by the CLI to
// validate command wiring.
func (reg *Registry) Paths() []string {
	out := make([]string, 0, len(reg.byPath))
	for p := range reg.byPath {
		out = append(out, p)
	}
	return out
}

// DefaultRegistry is the full route table of the console.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&Route{Path: "/login", Name: "Login"},
		&Route{
			Path:         "/",
			Name:         "Dashboard",
			RequiresAuth: true,
			Redirect:     "/workbench",
			Children: []*Route{
				{Path: "workbench", Name: "Workbench", Title: "Workbench"},
				{Path: "my-space", Name: "MySpace", Title: "My Space"},
				{Path: "project", Name: "ProjectMgt", Title: "Project Management"},
				{Path: "requirement", Name: "RequirementMgt", Title: "Requirement Management"},
				{Path: "development", Name: "DevelopmentMgt", Title: "Development Management"},
				{Path: "deployment", Name: "TransferDeployment", Title: "Transfer & Deployment"},
				{Path: "quality", Name: "QualityMgt", Title: "Quality Management"},
				{Path: "uat", Name: "UserAcceptance", Title: "User Acceptance"},
				{Path: "production", Name: "ProductionMgt", Title: "Production Management"},
				{Path: "issue", Name: "ProductionIssue", Title: "Production Issues"},
				{
					Path: "environment", Name: "Environment", Title: "Test Environments",
					Structural: true, Redirect: "/environment/list",
					Children: []*Route{
						{Path: "list", Name: "TestEnvironment", Title: "Environment List"},
					},
				},
				{
					Path: "automation", Name: "AutomationPlatform", Title: "Automation Platform",
					Structural: true, Redirect: "/automation/web/dashboard",
					Children: []*Route{
						{
							Path: "web", Name: "WebAutomation", Title: "Web Automation",
							Structural: true, Redirect: "/automation/web/dashboard",
							Children: []*Route{
								{Path: "dashboard", Name: "WebAutomationDashboard", Title: "Dashboard"},
								{Path: "product", Name: "ProductManagement", Title: "Product Management"},
								{Path: "manage", Name: "AutomationManagement", Title: "Automation Management"},
							},
						},
						{
							Path: "interface", Name: "InterfaceAutomation", Title: "Interface Automation",
							Structural: true,
							Children: []*Route{
								{Path: "project", Name: "InterfaceProjects", Title: "Projects"},
								{Path: "api", Name: "InterfaceApis", Title: "APIs"},
								{Path: "case", Name: "InterfaceCases", Title: "Cases"},
								{Path: "method", Name: "InterfaceMethods", Title: "Common Methods"},
								{Path: "assertion", Name: "InterfaceAssertions", Title: "Assertion Templates"},
								{Path: "config", Name: "InterfaceConfigs", Title: "Common Config"},
								{Path: "document", Name: "InterfaceDocuments", Title: "Documents"},
								{Path: "test", Name: "InterfaceTests", Title: "Test Management"},
								{Path: "report", Name: "InterfaceReports", Title: "Test Reports"},
							},
						},
					},
				},
				{
					Path: "system", Name: "System", Title: "System Management",
					Structural: true, Redirect: "/system/user",
					Children: []*Route{
						{Path: "user", Name: "UserManagement", Title: "Users"},
						{Path: "role", Name: "RoleManagement", Title: "Roles"},
						{Path: "menu", Name: "MenuManagement", Title: "Menus"},
						{Path: "dept", Name: "DeptManagement", Title: "Departments"},
						{Path: "post", Name: "PostManagement", Title: "Posts"},
						{Path: "notice", Name: "NoticeManagement", Title: "Notices"},
					},
				},
				{Path: "report", Name: "Report", Title: "Reports"},
			},
		},
	)
}
