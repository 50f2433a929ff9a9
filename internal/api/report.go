package api

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/yanmoais/project-management-platform/internal/rest"
)

// ProductPackages lists the product packages available for report
// generation.
func ProductPackages(ctx context.Context, c *rest.Client) (json.RawMessage, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   "/api/report/product-packages",
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// GenerateReport requests a report as a binary document. It returns the
// document bytes and the server-suggested filename, when one is present
// in the Content-Disposition header.
func GenerateReport(ctx context.Context, c *rest.Client, request any) ([]byte, string, error) {
	payload, err := c.Do(ctx, rest.Spec{
		Path:   "/api/report/generate",
		Method: http.MethodPost,
		Body:   request,
		Kind:   rest.KindBinary,
	})
	if err != nil {
		return nil, "", err
	}

	filename := ""
	if cd := payload.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return payload.Body, filename, nil
}
