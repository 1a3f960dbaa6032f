// Package format converts durations, HTTP status codes, stack traces and
// timestamps into the short strings shown in console tables.
//
// Every function is pure; the current time is always passed in.
package format
