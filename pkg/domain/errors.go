package domain

import "errors"

// ErrNilCorpus is returned when a caller passes a nil intent collection.
// Data-quality problems never produce errors; a missing collection is a
// caller bug and fails fast.
var ErrNilCorpus = errors.New("intent collection is nil")

// ErrReportNotFound is returned by report stores when no report exists for
// the requested id.
var ErrReportNotFound = errors.New("report not found")
