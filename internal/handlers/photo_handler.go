package handlers

import (
	"bytes"
	"errors"
	"log"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/httpx"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/service"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type PhotoHandler struct {
	footprintService *service.FootprintService
	s3               *storage.S3Storage
}

func NewPhotoHandler(footprintService *service.FootprintService, s3 *storage.S3Storage) *PhotoHandler {
	return &PhotoHandler{footprintService: footprintService, s3: s3}
}

// UploadPhoto attaches a photo to a footprint. The image is validated by
// magic number, downscaled, and re-encoded before it touches the bucket.
func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	if h.s3 == nil {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
	}

	footprintID, err := footprintIDParam(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_footprint_id", "Invalid footprint id")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return httpx.BadRequest(c, "missing_photo", "photo file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return httpx.Internal(c, "photo_open_failed")
	}
	defer file.Close()

	data, contentType, size, err := storage.ProcessFootprintPhoto(file, storage.DefaultPhotoOptions())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			return httpx.Error(c, fiber.StatusRequestEntityTooLarge, "photo_too_large", "Photo exceeds the size limit")
		case errors.Is(err, storage.ErrUnsupported), errors.Is(err, storage.ErrInvalidImage):
			return httpx.BadRequest(c, "invalid_photo", "Unsupported or corrupt image")
		default:
			return httpx.Internal(c, "photo_process_failed")
		}
	}

	key, err := storage.PhotoKey(footprintID, uuid.NewString()+".jpg")
	if err != nil {
		return httpx.Internal(c, "photo_key_failed")
	}

	if _, err := h.s3.PutObject(c.Context(), key, bytes.NewReader(data), size, contentType); err != nil {
		log.Printf("photo upload failed for footprint %d: %v", footprintID, err)
		return httpx.Internal(c, "photo_upload_failed")
	}

	if err := h.footprintService.AttachPhoto(footprintID, key); err != nil {
		// Don't leave an orphaned object behind.
		_ = h.s3.DeleteObject(c.Context(), key)
		if errors.Is(err, service.ErrFootprintNotFound) {
			return httpx.NotFound(c, "footprint_not_found", "Footprint does not exist")
		}
		return httpx.Internal(c, "photo_attach_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"has_photo": true})
}

// GetPhoto streams a footprint's photo. Photos of secret footprints go
// through the same password-or-host authorization as the footprint body,
// which is why this is a POST carrying the password.
func (h *PhotoHandler) GetPhoto(c *fiber.Ctx) error {
	if h.s3 == nil {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
	}

	footprintID, err := footprintIDParam(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_footprint_id", "Invalid footprint id")
	}

	var body passwordBody
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	key, err := h.footprintService.GetPhotoKey(footprintID, body.Password, httpx.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFootprintNotFound):
			return httpx.NotFound(c, "footprint_not_found", "Footprint does not exist")
		case errors.Is(err, service.ErrPhotoNotFound):
			return httpx.NotFound(c, "photo_not_found", "Footprint has no photo")
		case errors.Is(err, service.ErrForbidden):
			return httpx.Forbidden(c, "forbidden", "Wrong password and not the guestbook host")
		default:
			return httpx.Internal(c, "photo_fetch_failed")
		}
	}

	obj, st, err := h.s3.GetObject(c.Context(), key)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && (resp.StatusCode == 404 || resp.Code == "NoSuchKey") {
			return httpx.NotFound(c, "photo_not_found", "Footprint has no photo")
		}
		return httpx.Internal(c, "photo_fetch_failed")
	}

	if st.ContentType != "" {
		c.Type(st.ContentType)
	} else {
		c.Type("image/jpeg")
	}
	c.Set("Cache-Control", "private, max-age=86400")
	if st.Size > 0 {
		return c.SendStream(obj, int(st.Size))
	}
	return c.SendStream(obj)
}
