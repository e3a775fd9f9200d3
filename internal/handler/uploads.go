package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 10 << 20

var uploadNamePattern = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadHandler stores menu item images on disk and hands back a stable
// path. The catalog treats that path as an opaque string; nothing ever
// checks that an image is still reachable.
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates a new UploadHandler writing into dir.
func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// RegisterRoutes registers the upload endpoint on the given Chi router.
// Expected mount: /uploads, behind the auth gate.
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Upload)
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// Upload accepts a multipart image and writes it under the uploads
// directory with a unique, sanitized filename.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only image uploads are accepted"})
		return
	}

	name := uploadNamePattern.ReplaceAllString(filepath.Base(header.Filename), "")
	if name == "" {
		name = "image"
	}
	filename := fmt.Sprintf("%s-%s", uuid.NewString(), name)

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		logrus.Errorf("create uploads dir: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error saving file"})
		return
	}

	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		logrus.Errorf("create upload file: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error saving file"})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		logrus.Errorf("write upload file: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error saving file"})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Success: true, URL: "/uploads/" + filename})
}
