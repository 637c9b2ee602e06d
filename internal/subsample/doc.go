// Package subsample builds a per-class random subset of a dataset's training
// tree and verifies a previously built subset against its run manifest.
//
// A run lists the class directories under <root>/<source>, clears
// <root>/<dest>, and for each class copies floor(n*fraction) files drawn
// without replacement from a generator seeded once per run. File names are
// sorted before drawing, so the selection depends only on the seed and the
// set of names on disk.
package subsample
