package uploads

import (
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/metrics"
	"journal-backend/internal/shared/server/middleware"
	"journal-backend/internal/shared/server/respond"
	"journal-backend/internal/shared/storage/object"
	"journal-backend/internal/shared/util"
)

const (
	// maxUploadBytes caps a single upload at 50 MiB, enforced before any
	// store write.
	maxUploadBytes = 50 << 20

	// listPageSize is the fixed page the store is asked for. No cursor is
	// advanced; per-user folders are expected to stay small.
	listPageSize = 100
)

// Handler serves the per-user document and photo endpoints. There is no
// metadata database: listings, lookups, and deletes all go through the
// object store's directory listing.
type Handler struct {
	Store object.Store

	// now is swappable for filename-collision tests.
	now func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(store object.Store) *Handler {
	return &Handler{Store: store, now: time.Now}
}

// RegisterRoutes attaches upload routes to the (authenticated) router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, category := range []Category{CategoryDocuments, CategoryPhotos} {
		base := "/uploads/" + string(category)
		rg.GET(base, h.list(category))
		rg.POST(base, h.upload(category))
		rg.GET(base+"/:fileName", h.get(category))
		rg.DELETE(base+"/:fileName", h.remove(category))
	}
}

// item is the outward-facing shape of one stored upload.
type item struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"sizeFormatted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toItem(info object.ObjectInfo) item {
	return item{
		ID:            info.ID,
		Name:          info.Name,
		Size:          info.Size,
		SizeFormatted: util.FormatSize(info.Size),
		CreatedAt:     info.CreatedAt,
		UpdatedAt:     info.UpdatedAt,
	}
}

func (h *Handler) list(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := middleware.ScopeFromContext(c)

		infos, err := h.Store.List(c.Request.Context(), scope, folderFor(scope, category), listPageSize, 0)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "Failed to list files", err.Error())
			return
		}

		items := make([]item, 0, len(infos))
		for _, info := range infos {
			items = append(items, toItem(info))
		}
		respond.Collection(c, http.StatusOK, items, len(items))
	}
}

func (h *Handler) upload(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := middleware.ScopeFromContext(c)
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

		fileHeader, err := c.FormFile(category.FormField())
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respond.Error(c, http.StatusBadRequest, "File exceeds the 50 MB limit", "")
				return
			}
			respond.Error(c, http.StatusBadRequest, "A "+category.FormField()+" file is required", "")
			return
		}
		if fileHeader.Size > maxUploadBytes {
			respond.Error(c, http.StatusBadRequest, "File exceeds the 50 MB limit", "")
			return
		}

		ext := util.Ext(fileHeader.Filename)
		if !category.Allows(ext) {
			respond.Error(c, http.StatusBadRequest,
				"File type not allowed. Allowed types: "+category.AllowedList(), "")
			return
		}

		title := strings.TrimSpace(c.PostForm("title"))
		fileName, err := SynthesizeFileName(h.now(), title, fileHeader.Filename)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "Invalid file name", "")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "Unable to read file", "")
			return
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		key := path.Join(scope.UserID, string(category), fileName)
		if err := h.Store.Put(c.Request.Context(), scope, key, file, fileHeader.Size, contentType); err != nil {
			metrics.IncUploadFailed()
			respond.Error(c, http.StatusInternalServerError, "Upload failed", err.Error())
			return
		}

		metrics.IncUpload()
		metrics.ObserveUploadSize(float64(fileHeader.Size))

		now := h.now().UTC()
		respond.JSON(c, http.StatusCreated, gin.H{
			"success": true,
			"data": item{
				ID:            key,
				Name:          fileName,
				Size:          fileHeader.Size,
				SizeFormatted: util.FormatSize(fileHeader.Size),
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		})
	}
}

func (h *Handler) get(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := middleware.ScopeFromContext(c)
		fileName := c.Param("fileName")

		found, err := h.find(c, scope, category, fileName)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "Failed to list files", err.Error())
			return
		}
		if found == nil {
			respond.Error(c, http.StatusNotFound, "File not found", "")
			return
		}
		respond.OK(c, gin.H{"success": true, "data": toItem(*found)})
	}
}

func (h *Handler) remove(category Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := middleware.ScopeFromContext(c)
		fileName := c.Param("fileName")

		found, err := h.find(c, scope, category, fileName)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "Failed to list files", err.Error())
			return
		}
		if found == nil {
			respond.Error(c, http.StatusNotFound, "File not found", "")
			return
		}

		key := path.Join(folderFor(scope, category), found.Name)
		if err := h.Store.Remove(c.Request.Context(), scope, key); err != nil {
			respond.Error(c, http.StatusInternalServerError, "Failed to delete file", err.Error())
			return
		}
		respond.OK(c, gin.H{"success": true, "data": gin.H{"fileName": found.Name}})
	}
}

// find re-lists the category folder and scans for an exact name match.
// There is no id-to-path index, so lookup by name is an O(n) walk of the
// listing in provider order.
func (h *Handler) find(c *gin.Context, scope identity.Scope, category Category, fileName string) (*object.ObjectInfo, error) {
	infos, err := h.Store.List(c.Request.Context(), scope, folderFor(scope, category), listPageSize, 0)
	if err != nil {
		return nil, err
	}
	for i := range infos {
		if infos[i].Name == fileName {
			return &infos[i], nil
		}
	}
	return nil, nil
}

func folderFor(scope identity.Scope, category Category) string {
	return scope.UserID + "/" + string(category)
}
