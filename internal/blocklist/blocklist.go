// Package blocklist serves the reserved-slug, domain and email blocklists.
// The lists live in Redis so they can be managed without a deploy; when
// Redis is unavailable the compiled-in defaults apply.
package blocklist

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	keySlugs   = "blocklist:slugs"
	keyDomains = "blocklist:domains"
	keyEmails  = "blocklist:emails"
)

var defaultReservedSlugs = []string{
	"admin",
	"api",
	"app",
	"auth",
	"docs",
	"undefined",
	"null",
}

var defaultBlockedDomains = []string{
	"example.com",
	"example.org",
	"localhost",
	"invalid",
}

var defaultBlockedEmails = []string{
	"admin@example.com",
	"root@example.com",
}

type Blocklist struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func New(rdb *redis.Client, logger *slog.Logger) *Blocklist {
	return &Blocklist{rdb: rdb, logger: logger}
}

// Seed loads the default lists into Redis. Existing members are kept; SADD
// is idempotent.
func (b *Blocklist) Seed(ctx context.Context) error {
	if b.rdb == nil {
		return nil
	}
	for key, values := range map[string][]string{
		keySlugs:   defaultReservedSlugs,
		keyDomains: defaultBlockedDomains,
		keyEmails:  defaultBlockedEmails,
	} {
		members := make([]interface{}, len(values))
		for i, v := range values {
			members[i] = v
		}
		if err := b.rdb.SAdd(ctx, key, members...).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Blocklist) IsReservedSlug(ctx context.Context, slug string) bool {
	return b.member(ctx, keySlugs, slug, defaultReservedSlugs)
}

func (b *Blocklist) IsBlockedDomain(ctx context.Context, domain string) bool {
	return b.member(ctx, keyDomains, domain, defaultBlockedDomains)
}

func (b *Blocklist) IsBlockedEmail(ctx context.Context, email string) bool {
	return b.member(ctx, keyEmails, email, defaultBlockedEmails)
}

func (b *Blocklist) member(ctx context.Context, key, value string, fallback []string) bool {
	if b.rdb != nil {
		ok, err := b.rdb.SIsMember(ctx, key, value).Result()
		if err == nil {
			return ok
		}
		if b.logger != nil {
			b.logger.Warn("blocklist lookup failed, using defaults", "key", key, "error", err)
		}
	}
	for _, v := range fallback {
		if v == value {
			return true
		}
	}
	return false
}
