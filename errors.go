package npb

import "errors"

// ErrInvalidConfig is reported when a bar is constructed with parameters
// outside the supported set (unknown color name, negative update interval,
// negative length or width, multi-cell fill character). It is always
// returned wrapped; match with errors.Is.
var ErrInvalidConfig = errors.New("invalid progress bar configuration")
