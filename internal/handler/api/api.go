package api

import "errors"

// errMissingPrincipal signals a handler registered without RequireAuth.
var errMissingPrincipal = errors.New("principal missing from context")
