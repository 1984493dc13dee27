package resumes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/shared/server/middleware"
	"resume-platform/internal/shared/server/respond"
	"resume-platform/internal/shared/util"
	"resume-platform/resume/model"
	"resume-platform/resume/render"
)

const pdfContentType = "application/pdf"

// DocumentRenderer turns a resume into a PDF.
type DocumentRenderer interface {
	Render(resume model.Resume) ([]byte, error)
}

type Handler struct {
	Svc      *Service
	Renderer DocumentRenderer
	Archive  Archiver
}

func NewHandler(svc *Service, renderer DocumentRenderer, archive Archiver) *Handler {
	return &Handler{Svc: svc, Renderer: renderer, Archive: archive}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/download", h.download)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid resume payload", err.Error())
		return
	}
	resume, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.OK(c, resume)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, list)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid resume payload", err.Error())
		return
	}
	resume, err := h.Svc.Update(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.Svc.Delete(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		h.fail(c, ErrNotFound)
		return
	}
	respond.OK(c, gin.H{"message": "Resume deleted successfully"})
}

func (h *Handler) download(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	resume, err := h.Svc.Get(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.Renderer == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "renderer unavailable", nil)
		return
	}
	doc, err := h.Renderer.Render(resume)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.Archive != nil {
		h.Archive.Archive(c.Request.Context(), ownerID, resume.ID, doc)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, util.SafeFileStem(resume.Title)))
	c.Data(http.StatusOK, pdfContentType, doc)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
	case errors.Is(err, render.ErrRenderFailure):
		respond.Error(c, http.StatusInternalServerError, "render_failed", "Failed to generate PDF", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
	}
}
