// Package containers implements the domain state containers: each owns one
// entity collection, exposes CRUD plus domain-specific queries and
// transitions, and persists the full collection through the store package on
// every mutation. Containers are constructed once at startup and rehydrate
// their collections by merging stored records over compiled-in defaults.
//
// This file centralizes the sentinel errors containers return for
// predictable cases, so handlers can map them to HTTP results consistently.
package containers

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist in the
	// container's collection.
	ErrNotFound = errors.New("entity not found")

	// ErrCodeTaken is returned when adding a coupon whose code (compared
	// case-insensitively) already exists.
	ErrCodeTaken = errors.New("coupon code already exists")

	// ErrInvalidTransition is returned when a state-machine helper is asked
	// for an edge the entity's current status does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAssetInUse is returned by ConfirmDelete when a media asset still has
	// usage references and the delete was not forced through RequestDelete's
	// two-step flow.
	ErrAssetInUse = errors.New("media asset is referenced")

	// ErrAlreadySubscribed is returned when an email address is already on
	// the subscriber list.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrTemplateDisabled is returned when rendering a notification from a
	// disabled template.
	ErrTemplateDisabled = errors.New("notification template disabled")
)
