// Package ui adapts CLI output to the terminal it is written to and asks for
// confirmation before stored schemas are replaced.
package ui
