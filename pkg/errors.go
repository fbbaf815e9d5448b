// Package pkg, katmanlar arası paylaşılan yardımcıları barındırır.
// Bu dosya domain-level error'ları tanımlar.
//
// Service katmanı bu error'ları fmt.Errorf("%w: ...") ile sarar,
// handler katmanı errors.Is ile yakalayıp HTTP status'a çevirir:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBadRequest      = errors.New("bad request")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternal        = errors.New("internal error")
)
