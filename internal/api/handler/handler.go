package handler

import (
	"strconv"

	"tutorlink/messaging/internal/auth"
	"tutorlink/messaging/internal/chathub"
	"tutorlink/messaging/internal/config"
	"tutorlink/messaging/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies of the HTTP façade. It mirrors the
// realtime engine's authorization rules so the same invariants hold no
// matter which transport a client uses.
type Handler struct {
	Hub     *chathub.Hub
	Storage storage.Storage
	Auth    *auth.Authenticator
	Files   storage.FileStore
}

func NewHandler(hub *chathub.Hub, s storage.Storage, a *auth.Authenticator, files storage.FileStore) *Handler {
	return &Handler{Hub: hub, Storage: s, Auth: a, Files: files}
}

// pagination reads page/limit from the query, defaulting and clamping:
// page >= 1, limit capped at MaxPageSize so no request can force an
// unbounded scan.
func pagination(c *gin.Context) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 1 {
		page = v
	}

	limit = config.DefaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}
	return page, limit
}
