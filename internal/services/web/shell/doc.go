// Package shell renders the HyperLocal application chrome around page
// content.
//
// One Shell exists per page request. Mount starts a single background
// identity lookup; renders read whatever state the lookup has produced so
// far. A failed lookup leaves the shell anonymous and is never reported.
package shell
