package shed

import "errors"

// Marker is the file that marks a directory as an AdzeKit shed.
const Marker = ".adzekit"

// BackboneVersion is the marker schema version written by this build.
const BackboneVersion = 1

// Error variables for shed operations.
var (
	ErrNotAShed           = errors.New("not an AdzeKit shed")
	ErrNoShedPath         = errors.New("cannot determine shed path (set --shed or ADZEKIT_SHED)")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrMarkerInvalid      = errors.New("invalid shed marker")
	ErrEnvInvalid         = errors.New("invalid environment variable")
)
