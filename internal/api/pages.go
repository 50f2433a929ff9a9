// Package api binds each feature area's REST endpoints to the shared
// client. The single-endpoint overview pages all follow the same
// fetch-the-page-data shape; the richer areas (environments, automation,
// reports) get their own files.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/store"
)

func Workbench(c *rest.Client) store.FetchFunc[json.RawMessage]   { return pageData(c, "/api/workbench") }
func MySpace(c *rest.Client) store.FetchFunc[json.RawMessage]     { return pageData(c, "/api/my-space") }
func Projects(c *rest.Client) store.FetchFunc[json.RawMessage]    { return pageData(c, "/api/project") }
func Requirements(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/requirement")
}
func Development(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/development")
}
func Deployment(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/deployment")
}
func Quality(c *rest.Client) store.FetchFunc[json.RawMessage]    { return pageData(c, "/api/quality") }
func UserAcceptance(c *rest.Client) store.FetchFunc[json.RawMessage] { return pageData(c, "/api/uat") }
func Production(c *rest.Client) store.FetchFunc[json.RawMessage] {
	return pageData(c, "/api/production")
}
func Issues(c *rest.Client) store.FetchFunc[json.RawMessage] { return pageData(c, "/api/issue") }

// pageData builds the one fetch action a feature page needs.
func pageData(c *rest.Client, path string) store.FetchFunc[json.RawMessage] {
	return func(ctx context.Context, params url.Values) (json.RawMessage, error) {
		payload, err := c.Do(ctx, rest.Spec{
			Path:   path,
			Method: http.MethodGet,
			Query:  params,
		})
		if err != nil {
			return nil, err
		}
		return payload.Data, nil
	}
}
