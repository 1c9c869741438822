package sanitizer

import "errors"

var ErrRender = errors.New("sanitizer: failed to render markdown")
