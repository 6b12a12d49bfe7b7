package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/auth"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/batch"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/importer"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/report"
	"github.com/arenoe-studio/terzaghi-calculator/internal/config"
	"github.com/arenoe-studio/terzaghi-calculator/internal/history"
	"github.com/arenoe-studio/terzaghi-calculator/internal/metrics"
	"github.com/arenoe-studio/terzaghi-calculator/internal/profile"
	"github.com/arenoe-studio/terzaghi-calculator/internal/repo"
)

type deps struct {
	cfg    *config.Config
	log    *slog.Logger
	users  repo.Repository
	store  *history.Store
	checks map[string]func(context.Context) error
}

type serviceInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Shapes       []string `json:"shapes"`
	FailureModes []string `json:"failureModes"`
	StressUnits  []string `json:"stressUnits"`
	DensityUnits []string `json:"densityUnits"`
	HistoryLimit int      `json:"historyLimit"`
}

func CORS(origins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newRouter(d deps) http.Handler {
	router := mux.NewRouter()
	router.Use(metrics.HTTPMetricsMiddleware)

	authEnv := &auth.Authenv{
		JWTkey: []byte(d.cfg.TokenKey),
		Repo:   d.users,
		Logger: d.log.With("component", "auth"),
		Secure: d.cfg.TLS(),
	}
	limiter := auth.NewIPRateLimiter(rate.Limit(d.cfg.RateLimitRPS), d.cfg.RateLimitBurst)

	bearingH := &bearing.Handler{Logger: d.log}
	batchH := &batch.Handler{}
	importH := &importer.Handler{Logger: d.log}
	reportH := &report.Handler{Logger: d.log}
	historyH := &history.Handler{Store: d.store, Logger: d.log.With("component", "history")}
	profileH := &profile.ProfileHandler{Repo: d.users, History: d.store, Logger: d.log}

	apiR := router.PathPrefix("/api").Subrouter()

	limited := func(h http.HandlerFunc) http.Handler { return limiter.LimitMiddleware(h) }
	apiR.Handle("/register", limited(authEnv.RegisterHandler)).Methods("POST")
	apiR.Handle("/login", limited(authEnv.AuthHandler)).Methods("POST")
	apiR.Handle("/logout", limited(authEnv.LogoutHandler)).Methods("POST")

	apiR.HandleFunc("/calc", bearingH.Calc).Methods("POST")
	apiR.HandleFunc("/calc/batch", batchH.Calc).Methods("POST")
	apiR.HandleFunc("/calc/import", importH.Import).Methods("POST")
	apiR.HandleFunc("/calc/report", reportH.Generate).Methods("POST")
	apiR.HandleFunc("/info", infoHandler(d)).Methods("GET")

	apiR.Handle("/user/info", authEnv.OptionalUser(http.HandlerFunc(profileH.GetInfo))).Methods("GET")

	secureApi := apiR.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)
	secureApi.HandleFunc("/history", historyH.List).Methods("GET")
	secureApi.HandleFunc("/history", historyH.Save).Methods("POST")
	secureApi.HandleFunc("/history/file", historyH.Download).Methods("GET")
	secureApi.HandleFunc("/history/{row:[0-9]+}", historyH.Delete).Methods("DELETE")

	router.HandleFunc("/healthz", healthHandler(d.checks)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return CORS(d.cfg.CORSAllowedOrigins, router)
}

func infoHandler(d deps) http.HandlerFunc {
	info := serviceInfo{
		Name:         "terzaghi-calculator",
		Version:      version,
		Shapes:       []string{string(bearing.Strip), string(bearing.Square), string(bearing.Circular)},
		FailureModes: []string{string(bearing.General), string(bearing.Local)},
		StressUnits:  []string{"kgcm2", "tonm2", "knm2"},
		DensityUnits: []string{"kgcm3", "tonm3", "knm3"},
		HistoryLimit: d.store.MaxItems(),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		api.OK(w, info)
	}
}

func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		api.WriteJSON(w, code, api.Envelope{Success: healthy, Data: status})
	}
}
