package handlers

import (
	"io"
	"net/http"
	"strconv"

	"ideahub_backend/internal/middleware"
	"ideahub_backend/internal/services"
	"ideahub_backend/internal/storage"
	"ideahub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler раздает загруженные файлы и принимает новые
type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
	storage       storage.Storage
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService, st storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		storage:       st,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/*handle", h.Serve)

	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.MyUploads)
	}
}

// Upload принимает multipart-форму с одним файлом в поле "file"
// и возвращает handle для использования в attachments идеи.
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	handle, err := h.uploadService.Store(h.GetDB(c), middleware.GetUserID(c), fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	url, err := h.storage.GetURL(c.Request.Context(), handle)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"handle": handle, "url": url})
}

// MyUploads возвращает файлы текущего пользователя с публичными URL
func (h *FileHandler) MyUploads(c *gin.Context) {
	uploads, err := h.uploadService.ListMine(h.GetDB(c), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	type uploadEntry struct {
		Handle       string `json:"handle"`
		URL          string `json:"url"`
		OriginalName string `json:"original_name"`
		MimeType     string `json:"mime_type"`
		Size         int64  `json:"size"`
	}

	out := make([]uploadEntry, 0, len(uploads))
	for i := range uploads {
		url, err := h.storage.GetURL(c.Request.Context(), uploads[i].Path)
		if err != nil {
			continue
		}
		out = append(out, uploadEntry{
			Handle:       uploads[i].Path,
			URL:          url,
			OriginalName: uploads[i].OriginalName,
			MimeType:     uploads[i].MimeType,
			Size:         uploads[i].Size,
		})
	}

	c.JSON(http.StatusOK, gin.H{"uploads": out, "total": len(out)})
}

func (h *FileHandler) Serve(c *gin.Context) {
	// Wildcard-параметр приходит с ведущим слэшем
	handle := c.Param("handle")
	if len(handle) > 0 && handle[0] == '/' {
		handle = handle[1:]
	}

	upload, err := h.uploadService.Open(h.GetDB(c), handle)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Размер берем из стораджа: файл на диске авторитетнее записи в БД
	size, err := h.storage.GetSize(c.Request.Context(), upload.Path)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrFileNotFound)
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), upload.Path)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrFileNotFound)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "inline; filename="+strconv.Quote(upload.OriginalName))
	c.DataFromReader(http.StatusOK, size, upload.MimeType, reader, nil)
}
