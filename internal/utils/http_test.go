package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "Basic ID",
			id:   "20260119",
			want: "20260119",
		},
		{
			name: "ID with JSON extension",
			id:   "20260119.json",
			want: "20260119",
		},
		{
			name: "ID with GeoJSON extension",
			id:   "20260119.geojson",
			want: "20260119",
		},
		{
			name: "ID with multiple dots",
			id:   "789.data.json",
			want: "789.data",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.HandlerFunc(http.MethodGet, "/api/test/:date", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "date")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/test/"+tc.id, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result, "ExtractIDFromParams should correctly extract and clean the ID")
		})
	}
}
