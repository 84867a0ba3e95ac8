package lib

// AbsInt64 absolute value of int64 number. Except for -2^63, where
// int64 range takes over.
func AbsInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
