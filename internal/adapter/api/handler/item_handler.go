package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"freestuff/internal/domain/entity"
	"freestuff/internal/usecase"
	"freestuff/pkg/geo"
	"freestuff/pkg/response"
	"freestuff/pkg/utils"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type createItemRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	City        string   `json:"city"`
	Photos      []string `json:"photos"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	item, err := h.itemUseCase.CreateItem(c.Request().Context(), ownerID, usecase.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.ItemCategory(req.Category),
		City:        req.City,
		Photos:      req.Photos,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

// ListFeed returns available items, optionally filtered by category and
// ordered by distance from the caller's lat/lng.
func (h *ItemHandler) ListFeed(c echo.Context) error {
	items, err := h.itemUseCase.ListAvailable(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	var category *entity.ItemCategory
	if raw := c.QueryParam("category"); raw != "" {
		cat := entity.ItemCategory(raw)
		category = &cat
	}

	var observer *geo.Point
	latRaw, lngRaw := c.QueryParam("lat"), c.QueryParam("lng")
	if latRaw != "" && lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr == nil && lngErr == nil {
			observer = &geo.Point{Latitude: lat, Longitude: lng}
		}
	}

	feed := usecase.AssembleFeed(items, observer, category)

	params := utils.GetPaginationParams(c)
	start := params.Offset
	if start > len(feed) {
		start = len(feed)
	}
	end := start + params.PageSize
	if end > len(feed) {
		end = len(feed)
	}

	return response.Paginated(c, feed[start:end], int64(len(feed)), params.Page, params.PageSize)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) ListMyItems(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	items, err := h.itemUseCase.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}
