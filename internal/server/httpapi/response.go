package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

const (
	detailUnauthorized    = "Unauthorized"
	detailForbidden       = "Forbidden"
	detailNotFound        = "Not Found"
	detailTooManyRequests = "Too Many Requests"
	detailTooLarge        = "Request Entity Too Large"
	detailInternal        = "Internal Server Error"
)

// AccountResponse is the public account schema. It never carries the
// password hash.
type AccountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	IsVerified  bool      `json:"is_verified"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		IsActive:    a.IsActive,
		IsVerified:  a.IsVerified,
		IsSuperuser: a.IsSuperuser,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type errorBody struct {
	Detail any `json:"detail"`
}

type codedDetail struct {
	Code   common.Code `json:"code"`
	Reason string      `json:"reason"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, errorBody{Detail: detail})
}
