package authorization

import (
	"context"
	"errors"
)

const (
	ObjectOrder            = "order"
	ObjectCosts            = "costs"
	ObjectClient           = "client"
	ObjectPriceSheet       = "price_sheet"
	ObjectStaff            = "staff"
	ObjectFleet            = "fleet"
	ObjectInventory        = "inventory"
	ObjectInventoryRequest = "inventory_request"
	ObjectLog              = "log"
	ObjectDocument         = "document"
)

const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionExport  = "export"
	ActionSend    = "send"
	ActionApprove = "approve"
	// ActionViewOwn scopes a read to records assigned to the caller.
	ActionViewOwn = "view_own"
)

type Service interface {
	// Authorize reports ErrForbidden unless role may perform action on object.
	Authorize(ctx context.Context, role string, object string, action string) error
}

var (
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)
