package errors

import (
	stderrors "errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case stderrors.Is(err, ErrNotFound), stderrors.Is(err, mongo.ErrNoDocuments):
		return NewAppError(technicalMessage, MsgNotFound, ErrCodeNotFound, http.StatusNotFound, err)
	case stderrors.Is(err, ErrDuplicate), mongo.IsDuplicateKeyError(err):
		return NewAppError(technicalMessage, MsgDuplicate, ErrCodeDuplicate, http.StatusBadRequest, err)
	case stderrors.Is(err, ErrInvalidID):
		return NewAppError(technicalMessage, MsgInvalidID, ErrCodeInvalidID, http.StatusBadRequest, err)
	case stderrors.Is(err, ErrInvalidInput):
		return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeValidation, http.StatusBadRequest, err)
	case stderrors.Is(err, ErrInvalidParameter):
		return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
	case stderrors.Is(err, ErrBadCredentials):
		return NewAppError(technicalMessage, MsgBadCredentials, ErrCodeUnauthorized, http.StatusUnauthorized, err)
	case stderrors.Is(err, ErrUnauthorized):
		return NewAppError(technicalMessage, MsgUnauthorized, ErrCodeUnauthorized, http.StatusUnauthorized, err)
	case stderrors.Is(err, ErrForbidden):
		return NewAppError(technicalMessage, MsgForbidden, ErrCodeForbidden, http.StatusForbidden, err)
	case stderrors.Is(err, ErrBookingLimit):
		return NewAppError(technicalMessage, MsgBookingLimit, ErrCodeBookingLimit, http.StatusBadRequest, err)
	case stderrors.Is(err, ErrMalformedBody):
		return NewAppError(technicalMessage, MsgMalformedBody, ErrCodeMalformedBody, http.StatusBadRequest, err)
	case stderrors.Is(err, ErrPayloadTooLarge):
		return NewAppError(technicalMessage, MsgPayloadTooLarge, ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}
