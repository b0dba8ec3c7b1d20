package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/requestdata"
)

type UserHandler struct {
	userRepo repos.UserRepo
}

func NewUserHandler(userRepo repos.UserRepo) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	users, err := uh.userRepo.GetByIDs(c.Request.Context(), nil, []uuid.UUID{rd.UserID})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "user_fetch_failed", err)
		return
	}
	if len(users) == 0 {
		RespondError(c, http.StatusNotFound, "user_not_found", fmt.Errorf("user not found"))
		return
	}
	RespondOK(c, gin.H{"user": users[0]})
}
