package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
)

// writeError maps a service or gate error to its status and body. Anything
// unrecognized is logged and rendered as 500 without details.
func writeError(ctx context.Context, logger logging.Logger, w http.ResponseWriter, err error) {
	var invalidPassword *common.InvalidPasswordError

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeDetail(w, http.StatusUnauthorized, detailUnauthorized)
	case errors.Is(err, common.ErrorForbidden):
		writeDetail(w, http.StatusForbidden, detailForbidden)
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, detailNotFound)
	case errors.As(err, &invalidPassword):
		writeDetail(w, http.StatusBadRequest, codedDetail{
			Code:   common.CodeUpdateUserInvalidPassword,
			Reason: invalidPassword.Reason,
		})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusBadRequest, common.CodeUpdateUserEmailAlreadyExists)
	case errors.Is(err, common.ErrorInvalidEmail):
		writeDetail(w, http.StatusUnprocessableEntity, common.CodeUpdateUserInvalidEmail)
	default:
		logger.Error(ctx, "request failed", "error", err.Error(), "request_id", RequestIDFromContext(ctx))
		writeDetail(w, http.StatusInternalServerError, detailInternal)
	}
}
