package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jingjai/verifier/internal/capture"
	"github.com/jingjai/verifier/internal/images"
	"github.com/jingjai/verifier/internal/models"
	"github.com/jingjai/verifier/internal/storage"
)

// handlePhoto routes photo upload and removal for one slot.
func (h *Handler) handlePhoto(w http.ResponseWriter, r *http.Request, session *storage.StoredSession, slotID string) {
	switch r.Method {
	case "POST":
		h.handlePhotoUpload(w, r, session, slotID)
	case "DELETE":
		h.handlePhotoRemove(w, session, slotID)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePhotoUpload(w http.ResponseWriter, r *http.Request, session *storage.StoredSession, slotID string) {
	var fileData []byte
	var filename string
	var err error

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		fileData, filename, err = h.readURLUpload(r)
	} else {
		fileData, filename, err = h.readFileUpload(r)
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(fileData) >= images.MaxUploadBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	saved, err := images.Save(h.uploadsDir, fileData, filename)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	session.Lock()
	defer session.Unlock()

	// Attach overwrites an existing photo for the slot (retake) and
	// auto-advances the cursor when this was the current slot.
	if err := session.Session.Attach(slotID, saved.Path); err != nil {
		if errors.Is(err, capture.ErrUnknownSlot) {
			h.writeError(w, "Unknown slot: "+slotID, http.StatusNotFound)
			return
		}
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session.Photos[slotID] = models.PhotoRecord{
		SlotID: slotID,
		Path:   saved.Path,
		URL:    "/static/uploads/" + saved.Filename,
		Width:  saved.Width,
		Height: saved.Height,
	}
	photosUploaded.Inc()

	h.writeJSON(w, session.View())
}

func (h *Handler) handlePhotoRemove(w http.ResponseWriter, session *storage.StoredSession, slotID string) {
	session.Lock()
	defer session.Unlock()

	// The client asks for confirmation before calling; removal here is
	// unconditional.
	session.Session.Remove(slotID)
	delete(session.Photos, slotID)

	h.writeJSON(w, session.View())
}

func (h *Handler) readFileUpload(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("failed to read file: %w", err)
		}
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, images.MaxUploadBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file contents: %w", err)
	}

	return fileData, header.Filename, nil
}

func (h *Handler) readURLUpload(r *http.Request) ([]byte, string, error) {
	var request struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, "", fmt.Errorf("invalid JSON: %w", err)
	}
	if request.ImageURL == "" {
		return nil, "", fmt.Errorf("image_url is required")
	}

	fileData, err := downloadImage(request.ImageURL)
	if err != nil {
		return nil, "", err
	}

	parts := strings.Split(request.ImageURL, "/")
	filename := parts[len(parts)-1]
	if filename == "" {
		filename = "image.jpg"
	}

	return fileData, filename, nil
}

func downloadImage(imageURL string) ([]byte, error) {
	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, images.MaxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}
