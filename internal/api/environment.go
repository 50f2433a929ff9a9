package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/store"
)

// Environment is one test environment record.
type Environment struct {
	EnvID       int64  `json:"env_id,omitempty"`
	ProjectName string `json:"project_name"`
	EnvName     string `json:"env_name"`
	EnvType     string `json:"env_type"`
	EnvURL      string `json:"env_url"`
	DBType      string `json:"db_type,omitempty"`
	DBHost      string `json:"db_host,omitempty"`
	DBPort      string `json:"db_port,omitempty"`
	DBUser      string `json:"db_user,omitempty"`
	DBPassword  string `json:"db_password,omitempty"`
	Account     string `json:"account,omitempty"`
	Password    string `json:"password,omitempty"`
	Status      string `json:"status,omitempty"`
	CreateBy    string `json:"create_by,omitempty"`
}

// EnvironmentPage is the paginated environment list payload.
type EnvironmentPage struct {
	Total int64         `json:"total"`
	Rows  []Environment `json:"rows"`
}

// ListEnvironments binds the environment list endpoint.
func ListEnvironments(c *rest.Client) store.FetchFunc[EnvironmentPage] {
	return func(ctx context.Context, params url.Values) (EnvironmentPage, error) {
		payload, err := c.Do(ctx, rest.Spec{
			Path:   "/api/environment/list",
			Method: http.MethodGet,
			Query:  params,
		})
		if err != nil {
			return EnvironmentPage{}, err
		}
		var page EnvironmentPage
		if err := payload.Decode(&page); err != nil {
			return EnvironmentPage{}, err
		}
		return page, nil
	}
}

// AddEnvironment creates a test environment.
func AddEnvironment(ctx context.Context, c *rest.Client, env Environment) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   "/api/environment/add",
		Method: http.MethodPost,
		Body:   env,
	})
	return err
}

// UpdateEnvironment updates an existing test environment by env_id.
func UpdateEnvironment(ctx context.Context, c *rest.Client, env Environment) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   "/api/environment/update",
		Method: http.MethodPut,
		Body:   env,
	})
	return err
}

// DeleteEnvironment removes a test environment.
func DeleteEnvironment(ctx context.Context, c *rest.Client, envID int64) error {
	_, err := c.Do(ctx, rest.Spec{
		Path:   fmt.Sprintf("/api/environment/delete/%d", envID),
		Method: http.MethodDelete,
	})
	return err
}

// EnvironmentLogs fetches the change log for one environment.
func EnvironmentLogs(ctx context.Context, c *rest.Client, envID int64) (json.RawMessage, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   fmt.Sprintf("/api/environment/logs/%d", envID),
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}
