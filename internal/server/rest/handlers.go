package rest

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

type userPayload struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	UploadCount int         `json:"upload_count"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        userPayload `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type roleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

type imagePayload struct {
	ID              int64              `json:"id"`
	Filename        string             `json:"filename"`
	OriginalName    string             `json:"original_name"`
	CreatedAt       string             `json:"created_at"`
	URL             string             `json:"url"`
	Processed       bool               `json:"processed"`
	DetectedCount   int                `json:"detected_count"`
	DetectedObjects []models.Detection `json:"detected_objects,omitempty"`
}

type adminUserPayload struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	CreatedAt string      `json:"created_at"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		UploadCount: u.UploadCount,
	}
}

func toAdminUserPayload(u *models.User) adminUserPayload {
	return adminUserPayload{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toImagePayload(img *models.Image) imagePayload {
	return imagePayload{
		ID:              img.ID,
		Filename:        img.Filename,
		OriginalName:    img.OriginalName,
		CreatedAt:       img.CreatedAt.Format(time.RFC3339),
		URL:             "/image/file/" + img.Filename,
		Processed:       img.Processed,
		DetectedCount:   img.DetectedCount,
		DetectedObjects: img.DetectedObjects,
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserPayload(user),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserPayload(user),
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, toUserPayload(currentUser(c)))
}

func (s *Server) handleUpload(c *gin.Context) {
	mode := c.DefaultQuery("process_type", "blur")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusBadRequest, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	image, err := s.images.Upload(c.Request.Context(), currentUser(c),
		fileHeader.Filename, contentType, mode, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toImagePayload(image))
}

func (s *Server) handleListImages(c *gin.Context) {
	list, err := s.images.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]imagePayload, 0, len(list))
	for _, img := range list {
		payload = append(payload, toImagePayload(img))
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleGetFile(c *gin.Context) {
	body, contentType, err := s.images.GetFile(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (s *Server) handleListUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]adminUserPayload, 0, len(list))
	for _, u := range list {
		payload = append(payload, toAdminUserPayload(u))
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleUpdateRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid user id")
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := s.users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAdminUserPayload(user))
}
