package app

import "net/http"

func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

// IsInvalidAPIKey reports whether key is refused. With no keys configured
// the API is open and every key, including none, is accepted.
func (app *Application) IsInvalidAPIKey(key string) bool {
	validKeys := app.Config.ApiKeys
	if len(validKeys) == 0 {
		return false
	}
	if key == "" {
		return true
	}

	for _, validKey := range validKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
