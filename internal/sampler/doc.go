// Package sampler computes per-class sample sizes and draws samples without
// replacement from an explicitly seeded random generator.
package sampler
