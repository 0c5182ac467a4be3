package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/principal"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	service  *accounts.Service
	resolver *principal.Resolver
	logger   logging.Logger
	self     principal.Requirements
	admin    principal.Requirements
}

func (h *handlers) getMe(w http.ResponseWriter, r *http.Request) {
	_, p, ok := h.authorize(w, r, h.self)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toResponse(p.Account))
}

func (h *handlers) patchMe(w http.ResponseWriter, r *http.Request) {
	r, p, ok := h.authorize(w, r, h.self)
	if !ok {
		return
	}
	h.update(w, r, p.Account, accounts.ModeSelf)
}

func (h *handlers) getAccount(w http.ResponseWriter, r *http.Request) {
	_, target, ok := h.locate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toResponse(target))
}

func (h *handlers) patchAccount(w http.ResponseWriter, r *http.Request) {
	r, target, ok := h.locate(w, r)
	if !ok {
		return
	}
	h.update(w, r, target, accounts.ModePrivileged)
}

func (h *handlers) deleteAccount(w http.ResponseWriter, r *http.Request) {
	r, target, ok := h.locate(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), target); err != nil {
		writeError(r.Context(), h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorize resolves the caller against req and returns r carrying the
// principal in its context.
func (h *handlers) authorize(w http.ResponseWriter, r *http.Request, req principal.Requirements) (*http.Request, *principal.Principal, bool) {
	p, err := h.resolver.Resolve(r, req)
	if err != nil {
		writeError(r.Context(), h.logger, w, err)
		return nil, nil, false
	}
	return r.WithContext(principal.WithPrincipal(r.Context(), p)), p, true
}

// locate handles the shared prefix of the administrative routes: path id
// parsing, the superuser gate and the target lookup. A malformed id is a
// 404 before any authentication happens.
func (h *handlers) locate(w http.ResponseWriter, r *http.Request) (*http.Request, *models.Account, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return nil, nil, false
	}

	r, _, ok := h.authorize(w, r, h.admin)
	if !ok {
		return nil, nil, false
	}

	target, err := h.service.Get(r.Context(), id.String())
	if err != nil {
		writeError(r.Context(), h.logger, w, err)
		return nil, nil, false
	}
	return r, target, true
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request, target *models.Account, mode accounts.Mode) {
	var payload models.AccountUpdate
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, detailTooLarge)
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, common.CodeInvalidRequestBody)
		return
	}

	meta := accounts.RequestMeta{
		RequestID:  RequestIDFromContext(r.Context()),
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	}

	res, err := h.service.Update(r.Context(), target, payload, mode, meta)
	if err != nil {
		writeError(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(res.Account))
}
