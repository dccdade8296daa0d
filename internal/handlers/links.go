package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

// StatsClient fetches aggregated click statistics from the analytics
// service.
type StatsClient interface {
	Stats(ctx context.Context, code string) (*analytics.LinkStats, error)
}

// LinkHandler serves the link management API and the redirect edge.
type LinkHandler struct {
	service  *shortener.Service
	resolver *shortener.Resolver
	stats    StatsClient
	baseURL  string
	logger   *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *shortener.Service,
	resolver *shortener.Resolver,
	stats StatsClient,
	baseURL string,
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:  service,
		resolver: resolver,
		stats:    stats,
		baseURL:  baseURL,
		logger:   logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	link, err := h.service.Create(ctx, shortener.CreateParams{
		TargetURL:   req.Body.TargetURL,
		CustomAlias: req.Body.CustomAlias,
		ExpiresAt:   req.Body.ExpiresAt,
	})
	if err != nil {
		return nil, h.mapCreateError(err)
	}

	shortURL := h.shortURL(link.Code)

	resp := &CreateLinkResponse{}
	resp.Headers.Location = shortURL
	resp.Body = linkBody(link, shortURL)

	return resp, nil
}

func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := RequestMetaFromContext(ctx)

	target, err := h.resolver.Resolve(ctx, shortener.Code(req.Code), meta)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrNotFound):
			return nil, huma.Error404NotFound("short link not found")
		case errors.Is(err, shortener.ErrExpired):
			return nil, huma.Error410Gone("short link is no longer available")
		default:
			h.logger.Error("failed to resolve short link",
				zap.String("code", req.Code),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to resolve short link")
		}
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = target

	return resp, nil
}

func (h *LinkHandler) GetLink(ctx context.Context, req *GetLinkRequest) (*GetLinkResponse, error) {
	link, err := h.service.Get(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to load short link",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to load short link")
	}

	resp := &GetLinkResponse{}
	resp.Body = linkBody(link, h.shortURL(link.Code))

	return resp, nil
}

func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	if err := h.service.Deactivate(ctx, shortener.Code(req.Code)); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to deactivate short link",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to deactivate short link")
	}

	return &DeleteLinkResponse{}, nil
}

func (h *LinkHandler) GetLinkStats(ctx context.Context, req *GetLinkStatsRequest) (*GetLinkStatsResponse, error) {
	// Unknown codes are a 404 here, not an empty stats answer.
	if _, err := h.service.Get(ctx, shortener.Code(req.Code)); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to load short link",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to load short link")
	}

	stats, err := h.stats.Stats(ctx, req.Code)
	if err != nil {
		h.logger.Error("failed to fetch click stats",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error502BadGateway("statistics are unavailable right now")
	}

	return &GetLinkStatsResponse{Body: *stats}, nil
}

func (h *LinkHandler) mapCreateError(err error) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidTarget):
		return huma.Error400BadRequest("target url must be absolute http or https")
	case errors.Is(err, shortener.ErrInvalidAlias):
		return huma.Error400BadRequest("alias must be 3-20 characters of a-z, 0-9 or '-' and not a reserved word")
	case errors.Is(err, shortener.ErrAliasTaken):
		return huma.Error409Conflict("alias is already taken")
	case errors.Is(err, shortener.ErrExhausted):
		return huma.Error503ServiceUnavailable("could not allocate a short code, try again")
	default:
		h.logger.Error("failed to create short link", zap.Error(err))

		return huma.Error500InternalServerError("failed to create short link")
	}
}

func (h *LinkHandler) shortURL(code shortener.Code) string {
	return fmt.Sprintf("%s/%s", h.baseURL, code)
}

func linkBody(link *shortener.ShortLink, shortURL string) LinkBody {
	return LinkBody{
		Code:        string(link.Code),
		ShortURL:    shortURL,
		TargetURL:   link.TargetURL,
		CustomAlias: link.CustomAlias,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		Active:      link.Active,
		ClickCount:  link.ClickCount,
	}
}
