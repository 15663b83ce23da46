package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newDenylist(t *testing.T) (*repository.TokenDenylist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewTokenDenylist(client), mr
}

func TestTokenDenylist_AddAndContains(t *testing.T) {
	denylist, _ := newDenylist(t)
	ctx := context.Background()

	if err := denylist.Add(ctx, "token-id", time.Hour); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	found, err := denylist.Contains(ctx, "token-id")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if !found {
		t.Fatalf("expected token id to be denylisted")
	}

	found, err = denylist.Contains(ctx, "other-id")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if found {
		t.Fatalf("expected unknown token id to be allowed")
	}
}

func TestTokenDenylist_EntryExpires(t *testing.T) {
	denylist, mr := newDenylist(t)
	ctx := context.Background()

	if err := denylist.Add(ctx, "token-id", time.Minute); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	found, err := denylist.Contains(ctx, "token-id")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if found {
		t.Fatalf("expected entry to expire with the token")
	}
}

func TestTokenDenylist_IgnoresExpiredOrEmpty(t *testing.T) {
	denylist, mr := newDenylist(t)
	ctx := context.Background()

	if err := denylist.Add(ctx, "token-id", 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := denylist.Add(ctx, "", time.Hour); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}
}
