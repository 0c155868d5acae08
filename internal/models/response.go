package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseVersion is the version of the response envelope.
const ResponseVersion = 2

func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: time.Now().UnixNano() / int64(time.Millisecond),
		Data:        data,
		Text:        text,
		Version:     ResponseVersion,
	}
}

func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewEntryResponse wraps a single entity.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"entry": entry,
	})
}

// NewListResponse wraps a list of entities.
func NewListResponse(list interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"list":          list,
		"limitExceeded": false,
	})
}
