package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/store"
)

// WebDashboard binds the web automation dashboard endpoint.
func WebDashboard(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/automation/web")
}

// WebManagement binds the web automation use-case management page.
func WebManagement(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/automation/manage")
}

// ListProductProjects binds the product management project list.
func ListProductProjects(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/automation/product/projects")
}

// ProductProjectOptions fetches the select-box options for product projects.
func ProductProjectOptions(ctx context.Context, c *rest.Client) (json.RawMessage, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/product/projects/options",
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CreateProductProject registers a new product project.
func CreateProductProject(ctx context.Context, c *rest.Client, project any) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/product/projects",
		Method: http.MethodPost,
		Body:   project,
	})
	return err
}

// UpdateProductProject updates a product project.
func UpdateProductProject(ctx context.Context, c *rest.Client, id int64, project any) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   fmt.Sprintf("/api/automation/product/projects/%d", id),
		Method: http.MethodPut,
		Body:   project,
	})
	return err
}

// DeleteProductProject removes a product project.
func DeleteProductProject(ctx context.Context, c *rest.Client, id int64) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   fmt.Sprintf("/api/automation/product/projects/%d", id),
		Method: http.MethodDelete,
	})
	return err
}

// ProductProjectLogs fetches the operation log for one product project.
func ProductProjectLogs(ctx context.Context, c *rest.Client, id int64) (json.RawMessage, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   fmt.Sprintf("/api/automation/product/projects/%d/logs", id),
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// UploadProductImage uploads a product screenshot as multipart form data.
func UploadProductImage(ctx context.Context, c *rest.Client, filename string, file io.Reader) (json.RawMessage, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/product/upload",
		Method: http.MethodPost,
		Upload: &rest.Multipart{
			FileField: "file",
			FileName:  filename,
			File:      file,
		},
	})
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// ProductEnumValues fetches the configured values for an enum field.
func ProductEnumValues(ctx context.Context, c *rest.Client, field string) (json.RawMessage, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/product/enums/" + url.PathEscape(field),
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// AddProductEnumValue appends a value to an enum field.
func AddProductEnumValue(ctx context.Context, c *rest.Client, value any) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/product/enums",
		Method: http.MethodPost,
		Body:   value,
	})
	return err
}

// InterfaceAreas are the interface-automation asset areas that expose a
// uniform list endpoint.
var InterfaceAreas = []string{
	"project", "api", "case", "method", "assertion",
	"config", "document", "test", "report",
}

// InterfaceList binds the list endpoint of one interface-automation area.
func InterfaceList(c *rest.Client, area string) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/automation/interface/"+area+"/list")
}

// AddInterfaceProject creates an interface-automation project.
func AddInterfaceProject(ctx context.Context, c *rest.Client, project any) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/interface/project",
		Method: http.MethodPost,
		Body:   project,
	})
	return err
}

// UpdateInterfaceProject updates an interface-automation project.
func UpdateInterfaceProject(ctx context.Context, c *rest.Client, project any) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   "/api/automation/interface/project",
		Method: http.MethodPut,
		Body:   project,
	})
	return err
}

// DeleteInterfaceProject removes an interface-automation project.
func DeleteInterfaceProject(ctx context.Context, c *rest.Client, id int64) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   fmt.Sprintf("/api/automation/interface/project/%d", id),
		Method: http.MethodDelete,
	})
	return err
}
