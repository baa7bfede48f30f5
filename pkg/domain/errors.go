package domain

import "errors"

// ErrEmptyFlow is returned when a paged flow is constructed without pages.
var ErrEmptyFlow = errors.New("onboarding flow has no pages")

// ErrInvalidTarget is returned when navigation targets an index outside the flow.
var ErrInvalidTarget = errors.New("navigation target out of range")

// ErrFlowFinished is returned by any navigation call made after the flow reached its terminal state.
var ErrFlowFinished = errors.New("onboarding flow already finished")

// ErrSkipUnavailable is returned when Skip is requested on the last page or a single-page flow.
var ErrSkipUnavailable = errors.New("skip is not available on this page")

// ErrMarkerNotFound is returned by a MarkerStore when no version marker is stored.
var ErrMarkerNotFound = errors.New("version marker not found")

// ErrMissingVersion is returned when a host is built without a current version.
var ErrMissingVersion = errors.New("current version is required")

// ErrDismissed is reported by a presentation closed before its flow finished.
var ErrDismissed = errors.New("presentation dismissed before completion")
