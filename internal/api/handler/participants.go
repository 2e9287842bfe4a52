package handler

import (
	"log"
	"net/http"

	"tutorlink/messaging/internal/api/middleware"
	"tutorlink/messaging/internal/models"

	"github.com/gin-gonic/gin"
)

type participant struct {
	models.User
	Online bool `json:"online"`
}

// ListParticipants returns the users the caller may message under the
// role-pairing rule: students see tutors and tutors see students. Each
// entry carries a live-presence flag.
func (h *Handler) ListParticipants(c *gin.Context) {
	identity := middleware.Identity(c)

	var targetRole string
	switch identity.Role {
	case models.RoleStudent:
		targetRole = models.RoleTutor
	case models.RoleTutor:
		targetRole = models.RoleStudent
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Role cannot use messaging"})
		return
	}

	users, err := h.Storage.ListUsersByRole(targetRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list participants"})
		return
	}

	participants := make([]participant, 0, len(users))
	for _, u := range users {
		online, err := h.Storage.IsOnline(u.ID)
		if err != nil {
			log.Printf("WARNING: Failed to read presence for user %s: %v", u.ID, err)
		}
		participants = append(participants, participant{User: u, Online: online})
	}
	c.JSON(http.StatusOK, gin.H{"participants": participants})
}
