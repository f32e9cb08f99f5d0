// Package features holds the feature tree produced by the extractors.
//
// A feature tree is a plain ownership tree of Nodes: every node has a tag,
// ordered attributes, an optional scalar value and ordered children. Related
// objects are never linked in memory; they appear as child nodes carrying an
// "id" attribute that a consumer resolves against other trees.
//
// Completed trees are registered in a Collection under their Category.
// Recoverable problems met while building a tree are recorded in the
// collection's Errors registry against the most specific node, leaving the
// tree shape untouched.
//
// All textual values are produced through the helpers in format.go so that
// numbers, booleans and binary payloads render identically everywhere.
package features
