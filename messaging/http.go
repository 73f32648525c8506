package messaging

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

const maxBodyBytes = 1 << 20

// urlRequest is the body of the single-purpose endpoints
type urlRequest struct {
	URL     string               `json:"url"`
	Product *types.ProductRecord `json:"product,omitempty"`
}

type httpHandler struct {
	dispatcher *Dispatcher
	logger     types.Logger
}

// NewRouter exposes the dispatcher over HTTP
func NewRouter(d *Dispatcher, logger types.Logger) http.Handler {
	h := &httpHandler{dispatcher: d, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Post("/commands", h.handleCommand)
	r.Post("/extract", h.handleExtract)
	r.Post("/watch", h.handleWatch)
	r.Get("/watchlist", h.handleWatchList)
	r.Get("/health", h.handleHealth)

	return r
}

func (h *httpHandler) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req Request

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Errorf("Failed to decode request body: %v", err)
		h.sendError(w, r, "Failed to decode request", http.StatusBadRequest)
		return
	}
	if req.RequestID == "" {
		req.RequestID = middleware.GetReqID(r.Context())
	}
	h.dispatch(w, r, req)
}

func (h *httpHandler) handleExtract(w http.ResponseWriter, r *http.Request) {
	var body urlRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		h.logger.Errorf("Failed to decode request body: %v", err)
		h.sendError(w, r, "Failed to decode request", http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, Request{
		Command:   CommandExtractProduct,
		RequestID: middleware.GetReqID(r.Context()),
		URL:       body.URL,
	})
}

func (h *httpHandler) handleWatch(w http.ResponseWriter, r *http.Request) {
	var body urlRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		h.logger.Errorf("Failed to decode request body: %v", err)
		h.sendError(w, r, "Failed to decode request", http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, Request{
		Command:   CommandAddToWatchList,
		RequestID: middleware.GetReqID(r.Context()),
		URL:       body.URL,
		Product:   body.Product,
	})
}

func (h *httpHandler) handleWatchList(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, Request{
		Command:   CommandGetWatchList,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func (h *httpHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (h *httpHandler) dispatch(w http.ResponseWriter, r *http.Request, req Request) {
	resp, err := h.dispatcher.Handle(r.Context(), req)
	if err != nil {
		render.Status(r, statusFor(err))
	}
	render.JSON(w, r, resp)
}

// sendError answers requests that never reached the dispatcher
func (h *httpHandler) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	render.Status(r, status)
	render.JSON(w, r, Response{
		RequestID: middleware.GetReqID(r.Context()),
		Error:     message,
	})
}

func statusFor(err error) int {
	switch {
	case perrors.IsType(err, perrors.ErrorTypeValidation):
		return http.StatusBadRequest
	case errors.Is(err, perrors.ErrPageUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, perrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger types.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Infof("%s %s -> %d in %v (%s)",
					r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
