package handlers

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/arunsworld/departures"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/unrolled/logger"
)

type Options struct {
	CORSOrigins []string
	// Now is the wall clock; tests pin it.
	Now func() time.Time
}

func RegisterHandlers(handler *mux.Router, api departures.API, static fs.FS, templates fs.FS, opts Options) {
	h := handlers{
		handler: handler,
		api:     api,
		now:     opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	tmpls, err := template.New("").Delims("[[", "]]").ParseFS(templates, "*.html")
	if err != nil {
		panic(err)
	}
	h.tmpls = tmpls

	l := logger.New(logger.Options{
		Prefix:               "departures",
		RemoteAddressHeaders: []string{"X-Forwarded-For"},
	})
	handler.Use(l.Handler)
	handler.Use(withRequestID)

	h.registerStatic(static)
	h.registerHealth()
	h.registerStationsHandler()
	h.registerBoardHandler()
	h.registerTripHandler()
	h.registerAPIHandlers(corsMiddleware(opts.CORSOrigins))
}

type handlers struct {
	handler *mux.Router
	tmpls   *template.Template
	api     departures.API
	now     func() time.Time
}

func (h handlers) registerHealth() {
	h.handler.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func corsMiddleware(origins []string) mux.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}

func (h handlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpls.ExecuteTemplate(w, name, data); err != nil {
		logf(r, "error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
