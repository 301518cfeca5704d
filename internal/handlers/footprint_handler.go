package handlers

import (
	"errors"
	"strconv"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/cache"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/handlers/ws"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/httpx"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/service"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type FootprintHandler struct {
	footprintService *service.FootprintService
	footprintCache   *cache.FootprintCache
	hub              *ws.Hub
}

func NewFootprintHandler(footprintService *service.FootprintService, footprintCache *cache.FootprintCache, hub *ws.Hub) *FootprintHandler {
	return &FootprintHandler{
		footprintService: footprintService,
		footprintCache:   footprintCache,
		hub:              hub,
	}
}

type passwordBody struct {
	Password string `json:"password"`
}

func footprintIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *FootprintHandler) CreateFootprint(c *fiber.Ctx) error {
	var input service.CreateFootprintInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Writer = validation.TrimAndLimit(input.Writer, validation.MaxWriterLength())
	input.Content = validation.TrimAndLimit(input.Content, validation.MaxContentLength())
	if input.Writer == "" {
		return httpx.BadRequest(c, "missing_writer", "Writer is required")
	}
	if input.Content == "" {
		return httpx.BadRequest(c, "missing_content", "Content is required")
	}
	if input.GuestbookID == "" {
		return httpx.BadRequest(c, "missing_guestbook", "guestbook_id is required")
	}
	if !validation.ValidateLatitude(input.Latitude) || !validation.ValidateLongitude(input.Longitude) {
		return httpx.BadRequest(c, "invalid_coordinate", "Invalid latitude/longitude")
	}
	// A digest exists exactly when the footprint is secret.
	if input.IsSecret && input.Password == "" {
		return httpx.BadRequest(c, "missing_password", "Secret footprints require a password")
	}
	if !input.IsSecret {
		input.Password = ""
	}

	footprint, err := h.footprintService.CreateFootprint(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGuestbookNotFound):
			return httpx.NotFound(c, "guestbook_not_found", "Guestbook does not exist")
		case errors.Is(err, service.ErrOutOfArea):
			return httpx.BadRequest(c, "out_of_area", "Too far from the guestbook to leave a footprint")
		default:
			return httpx.Internal(c, "create_footprint_failed")
		}
	}

	_ = h.footprintCache.InvalidateGuestbook(footprint.GuestbookID)
	if h.hub != nil {
		_ = h.hub.SendToHost(footprint.Guestbook.HostID, ws.NewFootprintCreatedEvent(
			footprint.GuestbookID, footprint.ID, footprint.Writer, footprint.IsSecret, footprint.CreatedAt))
	}

	return c.Status(fiber.StatusCreated).JSON(footprint.ToResponse())
}

func (h *FootprintHandler) GetSecretFootprint(c *fiber.Ctx) error {
	footprintID, err := footprintIDParam(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_footprint_id", "Invalid footprint id")
	}

	var body passwordBody
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	response, err := h.footprintService.GetSecretFootprint(footprintID, body.Password, httpx.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFootprintNotFound):
			return httpx.NotFound(c, "footprint_not_found", "Footprint does not exist")
		case errors.Is(err, service.ErrForbidden):
			return httpx.Forbidden(c, "forbidden", "Wrong password and not the guestbook host")
		default:
			return httpx.Internal(c, "get_footprint_failed")
		}
	}

	return c.JSON(response)
}

func (h *FootprintHandler) DeleteFootprint(c *fiber.Ctx) error {
	footprintID, err := footprintIDParam(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_footprint_id", "Invalid footprint id")
	}

	var body passwordBody
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	guestbookID, err := h.footprintService.DeleteFootprint(footprintID, body.Password, httpx.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFootprintNotFound):
			return httpx.NotFound(c, "footprint_not_found", "Footprint does not exist")
		case errors.Is(err, service.ErrForbidden):
			return httpx.Forbidden(c, "forbidden", "Wrong password and not the guestbook host")
		default:
			return httpx.Internal(c, "delete_footprint_failed")
		}
	}

	_ = h.footprintCache.InvalidateGuestbook(guestbookID)
	return c.SendStatus(fiber.StatusNoContent)
}

// ReadCheckFootprint is hit opportunistically whenever a footprint is shown.
// Only the guestbook host's call has an effect; everyone else no-ops.
func (h *FootprintHandler) ReadCheckFootprint(c *fiber.Ctx) error {
	footprintID, err := footprintIDParam(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_footprint_id", "Invalid footprint id")
	}

	if err := h.footprintService.ReadCheckFootprint(footprintID, httpx.CallerID(c)); err != nil {
		if errors.Is(err, service.ErrFootprintNotFound) {
			return httpx.NotFound(c, "footprint_not_found", "Footprint does not exist")
		}
		return httpx.Internal(c, "read_check_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FootprintHandler) GetFootprintListByDate(c *fiber.Ctx) error {
	guestbookID := c.Params("id")
	if guestbookID == "" {
		return httpx.BadRequest(c, "missing_guestbook", "Guestbook id is required")
	}

	page := 0
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			page = p
		}
	}
	size := 10
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	if cached, ok := h.footprintCache.GetListing(guestbookID, page, size); ok {
		return c.JSON(cached)
	}

	slice, err := h.footprintService.GetFootprintListByDate(guestbookID, page, size)
	if err != nil {
		return httpx.Internal(c, "fetch_footprints_failed")
	}
	_ = h.footprintCache.SetListing(guestbookID, page, size, slice)

	return c.JSON(slice)
}
