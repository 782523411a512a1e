// Package icons names the icons used by the shell chrome and renders them
// as an inline Lucide sprite.
package icons
