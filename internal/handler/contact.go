package handler

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminExportContacts streams the WhatsApp contact list as CSV. The file is
// built per request and never written to disk.
func (h *Handler) AdminExportContacts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.contactSvc.ExportCSV(c.Context(), &buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to export contacts"})
	}

	filename := "whatsapp-contacts-" + time.Now().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *Handler) AdminListContacts(c *fiber.Ctx) error {
	contacts, err := h.contactSvc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load contacts"})
	}

	return c.JSON(fiber.Map{"contacts": contacts})
}
