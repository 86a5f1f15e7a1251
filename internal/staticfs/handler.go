package staticfs

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	store  AssetStore
	logger zerolog.Logger
}

func NewHandler(store AssetStore, logger zerolog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Options("/", Preflight)
	router.Options("/*", Preflight)
	router.Get("/", h.ServeHTTP)
	router.Get("/*", h.ServeHTTP)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	asset, err := h.store.Open(r.Context(), r.URL.Path)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to open static asset")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer asset.Content.Close()

	http.ServeContent(w, r, asset.Name, asset.ModTime, asset.Content)
}

// PermissiveCORS разрешает любые источники и заголовки для каждого ответа
func PermissiveCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}
