package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockflow/internal/middleware"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// ListUsers returns every account. Admin access.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Access.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// AddUser creates an account with the requested role. Admin access.
func (h *Handler) AddUser(c *gin.Context) {
	var input createUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.Access.CreateUser(c.Request.Context(), input.Username, input.Password, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User added successfully!", "user": user})
}

// DeleteUser removes an account. Deleting your own account is refused.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(c)

	if err := h.Access.DeleteUser(c.Request.Context(), principal.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
