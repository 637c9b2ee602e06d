// Package manifest records what a subsample run selected. A manifest is a YAML
// file written next to the destination tree; it can be validated against an
// embedded JSON Schema and checked for internal consistency so a later
// verify pass can compare it with the files on disk.
package manifest
