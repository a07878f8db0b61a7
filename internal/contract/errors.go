package contract

import "errors"

// Sentinel errors shared between the format drivers and the assessment engine.
var (
	// ErrNoFeatures marks a dataset with zero features. Assessment requires
	// at least one feature, so this fails before any analyzer runs.
	ErrNoFeatures = errors.New("dataset has no features")

	// ErrNoGeometry marks a source without any geometry column.
	ErrNoGeometry = errors.New("dataset has no geometry column")

	// ErrUnknownColumn marks a request for an attribute column that does not
	// exist in the dataset.
	ErrUnknownColumn = errors.New("unknown attribute column")
)
