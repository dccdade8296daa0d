package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the link management API and the redirect edge.
func RegisterRoutes(api huma.API, h *LinkHandler) {
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/api/links",
		Summary:       "Create a short link",
		Description:   "Creates a short link with a generated code or a caller-chosen alias.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/links/{code}",
		Summary:     "Get a short link",
		Description: "Returns the stored link for a short code.",
		Tags:        []string{"Links"},
	}, h.GetLink)

	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/api/links/{code}",
		Summary:       "Delete a short link",
		Description:   "Deactivates the link; later redirects answer 410 Gone.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/links/{code}/stats",
		Summary:     "Get click statistics",
		Description: "Proxies aggregated click counts from the analytics service.",
		Tags:        []string{"Links"},
	}, h.GetLinkStats)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to the target URL",
		Description: "Redirects to the URL behind the short code.",
		Tags:        []string{"Redirect"},
	}, h.Redirect)
}
