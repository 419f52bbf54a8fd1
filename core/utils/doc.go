// Package utils provides common utility functions for shortcut-sync.
// It includes tolerant scalar conversions used when reading registry fields that
// other tools may have written with a different type than Steam does.
package utils
