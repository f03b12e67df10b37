package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"argmap/internal/manager"
	"argmap/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	LoadLanguageModel(ctx context.Context) (manager.Model, error)
	LoadEmbeddingModel(ctx context.Context) (manager.Model, error)
	UnloadEmbeddingModel()
	Status() types.StatusResponse
	MemoryResponse() types.MemoryResponse
	DeviceResponse() types.DeviceResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	if corsEnabled {
		methods := corsAllowedMethods
		if len(methods) == 0 {
			methods = defaultCORSMethods
		}
		headers := corsAllowedHeaders
		if len(headers) == 0 {
			headers = defaultCORSHeaders
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: methods,
			AllowedHeaders: headers,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no model loaded"))
	})

	r.Group(func(r chi.Router) {
		r.Use(inflight)
		r.Get("/status", getStatus(svc))
		r.Get("/device", getDevice(svc))
		r.Get("/memory", getMemory(svc))
		r.Post("/models/language", postLoad(svc, manager.SlotLanguage, svc.LoadLanguageModel))
		r.Post("/models/embedding", postLoad(svc, manager.SlotEmbedding, svc.LoadEmbeddingModel))
		r.Delete("/models/embedding", deleteEmbedding(svc))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// getStatus godoc
// @Summary      Slot and memory status
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func getStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	}
}

// getDevice godoc
// @Summary      Device mode and runtime versions
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.DeviceResponse
// @Router       /device [get]
func getDevice(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.DeviceResponse())
	}
}

// getMemory godoc
// @Summary      Accelerator memory
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.MemoryResponse
// @Router       /memory [get]
func getMemory(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.MemoryResponse())
	}
}

// postLoad godoc
// @Summary      Load a model slot
// @Description  Constructs the model named by the environment on first call; later calls return the cached slot.
// @Tags         models
// @Produce      json
// @Param        slot  path  string  true  "language or embedding"
// @Success      200  {object}  types.SlotStatus
// @Failure      404  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Failure      507  {object}  types.ErrorResponse
// @Router       /models/{slot} [post]
func postLoad(svc Service, slot manager.SlotName, load func(context.Context) (manager.Model, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if loadTimeout > 0 {
			var stop context.CancelFunc
			ctx, stop = context.WithTimeout(ctx, loadTimeout)
			defer stop()
		}
		if _, err := load(ctx); err != nil {
			if r.Context().Err() != nil {
				return
			}
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, slotStatus(svc.Status(), slot))
	}
}

// deleteEmbedding godoc
// @Summary      Evict the embedding model
// @Tags         models
// @Success      204
// @Router       /models/embedding [delete]
func deleteEmbedding(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.UnloadEmbeddingModel()
		w.WriteHeader(http.StatusNoContent)
	}
}

func slotStatus(st types.StatusResponse, slot manager.SlotName) types.SlotStatus {
	for _, s := range st.Slots {
		if s.Slot == string(slot) {
			return s
		}
	}
	return types.SlotStatus{Slot: string(slot), State: string(manager.StateEmpty)}
}
