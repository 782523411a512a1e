// Package branding holds product identity strings shared by both services.
package branding

// AppName is the user-facing product name.
const AppName = "HyperLocal"

// Monogram is the single-letter mark rendered in the header logo.
const Monogram = "H"
