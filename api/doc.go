// Package api holds types, interfaces and error values that are shared
// between rbstore packages and their applications.
package api
