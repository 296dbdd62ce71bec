// Package api - HTTP layer for the number generation service.
// Handlers wrap the engine; they contain no generation logic themselves.
package api

import "phonegen/core/model"

// Envelope is the uniform JSON response shape: {code, message, data}.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginRequest is the input to POST /api/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GenerateRequest is the input to POST /api/generate
type GenerateRequest struct {
	Prefix    string `json:"prefix"`
	Suffix4   string `json:"suffix_4,omitempty"`
	Suffix3   string `json:"suffix_3,omitempty"`
	Province  string `json:"province"`
	City      string `json:"city"`
	Operators []int  `json:"operators,omitempty"`
}

// Filter converts the request into the engine's filter specification.
func (r *GenerateRequest) Filter(maxCount int) model.FilterSpec {
	return model.FilterSpec{
		Prefix:       r.Prefix,
		ExactSuffix4: r.Suffix4,
		ExactSuffix3: r.Suffix3,
		Province:     r.Province,
		City:         r.City,
		Operators:    r.Operators,
		MaxCount:     maxCount,
	}
}

// FileInfo describes one downloadable artifact or partition.
type FileInfo struct {
	Name string `json:"name"`
	Size string `json:"size"`
	URL  string `json:"url"`
}

// GenerateData is the payload of a successful generation.
type GenerateData struct {
	Count int        `json:"count"`
	Files []FileInfo `json:"files"`
}

// CleanupData is the payload of a retention sweep.
type CleanupData struct {
	Deleted int `json:"deleted"`
}
