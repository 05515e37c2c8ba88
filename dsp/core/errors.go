package core

import "errors"

// ErrConfig marks a malformed synthesis request: bad event lists, a
// wavelength that is not a whole number of samples, or constructor values
// outside their valid range. Calls failing with ErrConfig cache nothing.
var ErrConfig = errors.New("invalid synthesis config")

// ErrInvariant marks a breached internal contract, for example a reduced
// envelope whose first node lies after the buffer start. It is never
// corrected or retried.
var ErrInvariant = errors.New("internal invariant violated")
