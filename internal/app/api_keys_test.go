package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sudface/frequency/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
	assert.True(t, app.IsInvalidAPIKey("other"))
	assert.False(t, app.IsInvalidAPIKey("key"))
}

func TestOpenAPIWithoutKeys(t *testing.T) {
	app := &Application{}
	assert.False(t, app.IsInvalidAPIKey(""))
	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/v1/profiles", nil)))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := &Application{Config: appconf.Config{ApiKeys: []string{"test"}}}
	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/v1/profiles?key=test", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/v1/profiles?key=nope", nil)))
}
