// Package main starts the HyperLocal development identity provider.
package main

import (
	identitycmd "github.com/louisbranch/hyperlocal/internal/cmd/identity"
	entrypoint "github.com/louisbranch/hyperlocal/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceIdentity, identitycmd.ParseConfig, identitycmd.Run)
}
