package errors

// User-friendly error messages
const (
	MsgNotFound          = "Resource not found."
	MsgDuplicate         = "Duplicate field value entered."
	MsgInvalidID         = "The provided id is not valid."
	MsgInvalidParameters = "The provided parameters are invalid. Please check your input and try again."
	MsgBadCredentials    = "Invalid credentials."
	MsgUnauthorized      = "Not authorized to access this route."
	MsgForbidden         = "You are not allowed to perform this action."
	MsgBookingLimit      = "You have reached the maximum number of bookings."
	MsgRateLimited       = "Too many requests, please try again later."
	MsgMalformedBody     = "The request body could not be parsed."
	MsgPayloadTooLarge   = "The request body is too large."
	MsgInternalError     = "Something went wrong on our end. Please try again later."
)
