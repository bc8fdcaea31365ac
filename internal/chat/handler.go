package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/media"
)

type Handler struct {
	service ChatService
}

func NewHandler(s ChatService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	c, err := h.service.CreateChat(r.Context(), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "chat created successfully",
		"chat":    c,
	})
}

func (h *Handler) GetChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.service.ListChats(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetChat(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"chat": c})
}

// Ask accepts either a JSON body, or a multipart form with a "message"
// field plus an optional "image" file.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var (
		req       AskRequest
		imageName string
		image     []byte
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(media.MaxImageSize); err != nil {
			config.Error(w, apperr.Validation("invalid request body"))
			return
		}
		req.Message = r.FormValue("message")
		if len(r.MultipartForm.File["image"]) > 0 {
			name, data, err := media.ReadImage(r, "image")
			if err != nil {
				config.Error(w, err)
				return
			}
			imageName, image = name, data
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, apperr.Validation("invalid request body"))
		return
	}
	if err := config.ValidateStruct(req); err != nil {
		config.Error(w, err)
		return
	}

	resp, err := h.service.Ask(r.Context(), chi.URLParam(r, "id"), req, imageName, image)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")
	if err := h.service.DeleteChat(r.Context(), chatID); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "chat has been deleted successfully",
		"chat_id": chatID,
	})
}
