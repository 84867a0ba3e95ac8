package api

import "errors"

// ErrorInvalidArgument for bad creation parameters, like a missing
// comparison function or a zero object size.
var ErrorInvalidArgument = errors.New("api.invalidargument")

// ErrorOutofMemory when block pool cannot be registered, or when it
// is exhausted.
var ErrorOutofMemory = errors.New("api.outofmemory")
