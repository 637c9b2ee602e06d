// Package dataset handles the on-disk layout of a class-per-directory image
// dataset: locating the source and destination trees, enumerating classes and
// their files, resetting the destination, and copying files verbatim. All
// operations go through an afero.Fs so they can run against the OS or memory.
package dataset
