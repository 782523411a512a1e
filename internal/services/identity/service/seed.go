package service

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/hyperlocal/internal/services/identity/storage"
)

// DemoUsers are the accounts created by Seed. Their ids are fixed so
// reseeding updates rather than duplicates them.
var DemoUsers = []storage.User{
	{ID: "0b7f2a52-4f0c-4a38-9d53-6a4f0f6e1a01", FullName: "Alice Example", Email: "alice@example.com"},
	{ID: "0b7f2a52-4f0c-4a38-9d53-6a4f0f6e1a02", FullName: "Bob", Email: "bob@example.com"},
	{ID: "0b7f2a52-4f0c-4a38-9d53-6a4f0f6e1a03", FullName: "Carol Avatar", Email: "carol@example.com", AvatarURL: "https://api.dicebear.com/9.x/initials/svg?seed=Carol"},
}

// Seed upserts the demo users.
func Seed(ctx context.Context, store storage.UserStore, now time.Time) error {
	for i, user := range DemoUsers {
		user.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		if err := store.PutUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.FullName, err)
		}
	}
	return nil
}
