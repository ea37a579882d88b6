package api

import (
	"errors"
	"net/http"

	"clipscout/internal/acquisition"
	"clipscout/internal/lifecycle"
	"clipscout/internal/services"
)

// HTTPStatus maps a service error to a response code.
func HTTPStatus(err error) int {
	var dup *lifecycle.DuplicateError
	var acq *acquisition.Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.As(err, &acq) && acq.Category != acquisition.CategoryToolNotInstalled:
		return http.StatusBadGateway
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrExternalTool):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the failure payload for err.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error(), Kind: services.Kind(err)}

	var dup *lifecycle.DuplicateError
	if errors.As(err, &dup) {
		resp.DuplicateInfo = &DuplicateInfo{
			ID:          dup.Existing.ID,
			Status:      string(dup.Existing.Status),
			StatusLabel: dup.StatusLabel(),
			Username:    dup.Existing.Username,
			Memo:        dup.Existing.Memo,
		}
		return resp
	}

	var acq *acquisition.Error
	if errors.As(err, &acq) {
		resp.Error = acq.Message
		resp.Category = string(acq.Category)
		resp.Detail = acq.Detail
	}
	return resp
}
