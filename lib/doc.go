// Package lib provide useful functions and features that are not
// tied to any single rbstore package.
package lib
