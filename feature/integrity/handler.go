package integrity

import (
	"world-manager/core/logger"
	"world-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/documents", h.HandleDocumentsCheck)
	group.Get("/tables", h.HandleTablesCheck)
	group.Get("/contents", h.HandleContentsCheck)
}

// HandleIntegrityCheck runs every check and returns a combined report.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Running all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	// Documents
	docReports := h.service.CheckDocuments(ctx)
	report["documents"] = map[string]interface{}{
		"status":    documentsStatus(docReports),
		"documents": docReports,
	}

	// Tables
	tableReports := h.service.CheckTables(ctx)
	report["tables"] = map[string]interface{}{
		"status": tablesStatus(tableReports),
		"tables": tableReports,
	}

	// Contents (slow: normalizes every document and scans every table)
	contents := make(map[string]interface{})
	for _, kind := range h.service.Kinds() {
		plan, err := h.service.CheckContents(ctx, kind)
		if err != nil {
			contents[kind] = map[string]interface{}{"status": "error", "error": err.Error()}
			continue
		}
		status := "ok"
		if plan.Summary.MissingStore+plan.Summary.MissingDocument+plan.Summary.Mismatched > 0 {
			status = "drift"
		}
		contents[kind] = map[string]interface{}{"status": status, "summary": plan.Summary}
	}
	report["contents"] = contents

	return c.JSON(report)
}

// HandleDocumentsCheck verifies the authored documents.
func (h *Handler) HandleDocumentsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports := h.service.CheckDocuments(c.Context())
	status := documentsStatus(reports)
	if status != "ok" {
		l.Warn("Document problems detected", zap.String("status", status))
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"documents": reports,
	})
}

// HandleTablesCheck verifies the store tables and their key schemas.
func (h *Handler) HandleTablesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports := h.service.CheckTables(c.Context())
	status := tablesStatus(reports)
	if status != "ok" {
		l.Warn("Table problems detected", zap.String("status", status))
	}

	return c.JSON(fiber.Map{
		"status": status,
		"tables": reports,
	})
}

// HandleContentsCheck reconciles stored records against the documents.
// Without a kind query parameter it reports a summary per kind; with one
// it returns that kind's full plan, including per-record results.
func (h *Handler) HandleContentsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.Context()

	if kind := c.Query("kind"); kind != "" {
		plan, err := h.service.CheckContents(ctx, kind)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(plan)
	}

	l.Info("Reconciling all record kinds")
	report := make(map[string]interface{})
	for _, kind := range h.service.Kinds() {
		plan, err := h.service.CheckContents(ctx, kind)
		if err != nil {
			l.Error("Content check failed", zap.String("kind", kind), zap.Error(err))
			report[kind] = map[string]interface{}{"status": "error", "error": err.Error()}
			continue
		}
		status := "ok"
		if plan.Summary.MissingStore+plan.Summary.MissingDocument+plan.Summary.Mismatched > 0 {
			status = "drift"
		}
		report[kind] = map[string]interface{}{"status": status, "summary": plan.Summary}
	}

	return c.JSON(report)
}

// documentsStatus folds per-document reports into one status.
func documentsStatus(reports []checks.DocumentReport) string {
	for _, r := range reports {
		if !r.Healthy() {
			return "error"
		}
	}
	return "ok"
}

// tablesStatus folds per-table reports into one status.
func tablesStatus(reports []checks.TableReport) string {
	for _, r := range reports {
		if !r.Healthy() {
			return "error"
		}
	}
	return "ok"
}
