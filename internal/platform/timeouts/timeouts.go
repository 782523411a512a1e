// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// IdentityRequest caps a single outbound identity lookup.
const IdentityRequest = 5 * time.Second

// IdentityWait is the default time a full-page render waits for the identity
// outcome before rendering the anonymous chrome.
const IdentityWait = 300 * time.Millisecond

// SessionCleanup is how often the identity provider prunes expired sessions.
const SessionCleanup = 5 * time.Minute
