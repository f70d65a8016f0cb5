package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrEventNotFound = errors.New("event not found")
var ErrTicketNotFound = errors.New("ticket not found")
var ErrTicketClassNotFound = errors.New("ticket class not found")
var ErrNotOnSale = errors.New("ticket class is not on sale")
var ErrNotEnoughCapacity = errors.New("not enough tickets available")
var ErrReservationLimit = errors.New("per-user reservation limit hit")
