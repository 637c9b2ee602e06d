// Package platform smooths over filesystem differences between operating
// systems when applying file metadata. On Windows, Unix permission bits are
// not applied.
package platform
