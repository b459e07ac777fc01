package engine

import "errors"

// ErrNoSelection is returned by status edits when no country is selected.
var ErrNoSelection = errors.New("no country selected")
