package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jdcamargo/cotizador-api/internal/application/billing"
	"github.com/jdcamargo/cotizador-api/internal/application/dto"
	"github.com/jdcamargo/cotizador-api/internal/domain"
)

// ExportHandler descarga de documentos en PDF y DOCX (protegido).
// Sirve para ambos kinds: el caso de uso decide título y layout.
type ExportHandler struct {
	uc *billing.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *billing.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// PDF GET /api/documents/:id/pdf
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// DOCX GET /api/documents/:id/docx
func (h *ExportHandler) DOCX(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportDOCX(c.Context(), c.Params("id"))
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *ExportHandler) exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "guarde el documento antes de exportarlo"})
	}
	return internalError(c, err)
}
