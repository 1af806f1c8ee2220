package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) DeleteUserByParam(c *gin.Context) {
	s.deleteUser(c, c.Param("email"))
}

type deleteUserBody struct {
	Email string `json:"email"`
}

func (s *Server) DeleteUserByBody(c *gin.Context) {
	var req deleteUserBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	s.deleteUser(c, req.Email)
}

func (s *Server) deleteUser(c *gin.Context, email string) {
	removed, err := s.accountSvc.DeleteUser(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
		"removed": removed,
	})
}

func (s *Server) ListDeletedUsers(c *gin.Context) {
	deleted, err := s.accountSvc.ListDeleted(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedUsers": deleted})
}
