package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every endpoint on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/v1/services/:date", api.instrument("services", validateAPIKey(api, api.servicesHandler)))
	router.Handler(http.MethodGet, "/api/v1/frequency/:profile/:date", api.instrument("frequency", validateAPIKey(api, api.frequencyHandler)))
	router.Handler(http.MethodGet, "/api/v1/details/:date", api.instrument("details", validateAPIKey(api, api.detailsHandler)))
	router.Handler(http.MethodGet, "/api/v1/profiles", api.instrument("profiles", validateAPIKey(api, api.profilesHandler)))
	router.Handler(http.MethodGet, "/api/v1/feed", api.instrument("feed", validateAPIKey(api, api.feedHandler)))
	router.Handler(http.MethodGet, "/healthz", http.HandlerFunc(api.healthHandler))
	if api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.sendMethodNotAllowed)
	router.HandleOPTIONS = false
}

// Routes returns the router wrapped in the middleware chain: security
// headers, request logging, rate limiting and compression, outermost first.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = CompressionMiddleware(router)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = NewRequestLoggingMiddleware(api.logger())(handler)
	return securityHeaders(handler)
}
