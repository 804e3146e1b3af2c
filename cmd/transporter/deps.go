package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/KirkDiggler/cobblemon-transporter/internal/allocator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/mojang"
	"github.com/KirkDiggler/cobblemon-transporter/internal/config"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/extractor"
	"github.com/KirkDiggler/cobblemon-transporter/internal/merger"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/idgen"
	"github.com/KirkDiggler/cobblemon-transporter/internal/redis"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/savedata"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/usernames"
	"github.com/KirkDiggler/cobblemon-transporter/internal/schema"
)

func newCodec() (*schema.Codec, error) {
	path := cfg.HyphensFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Cache.Dir, path)
	}

	table, err := schema.LoadHyphenTable(path)
	if err != nil {
		return nil, err
	}

	return schema.New(&schema.Config{
		Clock:   clock.New(),
		Hyphens: table,
	})
}

// newUsernameStore opens the configured cache backend. The returned func
// releases it.
func newUsernameStore() (usernames.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		client, err := redis.NewClient(cfg.Cache.RedisAddr, nil)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis address")
		}
		store, err := usernames.NewRedisStore(&usernames.RedisConfig{
			Client: client,
			Key:    cfg.Cache.RedisKey,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, func() { _ = client.Close() }, nil

	case config.CacheSQLite:
		store, err := usernames.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	store, err := usernames.NewFileStore(cfg.Cache.Dir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// usernameSession is a loaded username cache plus the resolver reading
// through it. A disabled profile service leaves both nil.
type usernameSession struct {
	cache    *usernames.Cache
	resolver extractor.UsernameResolver
	release  func()
}

func openUsernames(ctx context.Context) (*usernameSession, error) {
	if cfg.Mojang.Disabled {
		return &usernameSession{release: func() {}}, nil
	}

	store, release, err := newUsernameStore()
	if err != nil {
		return nil, err
	}

	cache, err := usernames.NewCache(&usernames.CacheConfig{Store: store})
	if err != nil {
		release()
		return nil, err
	}
	if err := cache.Load(ctx); err != nil {
		slog.WarnContext(ctx, "Username cache not loaded, starting empty",
			"backend", cfg.Cache.Backend,
			"error", err.Error())
	}

	client, err := mojang.New(&mojang.Config{
		BaseURL:        cfg.Mojang.BaseURL,
		Attempts:       cfg.Mojang.Attempts,
		RetryDelay:     cfg.Mojang.RetryDelay,
		AttemptTimeout: cfg.Mojang.AttemptTimeout,
	})
	if err != nil {
		release()
		return nil, err
	}

	resolver, err := usernames.NewResolver(&usernames.ResolverConfig{
		Cache:  cache,
		Client: client,
	})
	if err != nil {
		release()
		return nil, err
	}

	return &usernameSession{cache: cache, resolver: resolver, release: release}, nil
}

// Close flushes new names and releases the backend
func (s *usernameSession) Close(ctx context.Context) {
	defer s.release()
	if s.cache == nil {
		return
	}
	if err := s.cache.Flush(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to save username cache", "error", err.Error())
	}
}

// newTransfer wires the transfer orchestrator over the record directory.
// resolver may be nil.
func newTransfer(outputDir string, resolver extractor.UsernameResolver) (transfer.Service, error) {
	codec, err := newCodec()
	if err != nil {
		return nil, err
	}

	recordRepo, err := records.NewFileRepository(&records.Config{
		Dir:         outputDir,
		IDGenerator: idgen.NewULID(clock.New()),
	})
	if err != nil {
		return nil, err
	}

	ext, err := extractor.New(&extractor.Config{Codec: codec, Resolver: resolver})
	if err != nil {
		return nil, err
	}

	mrg, err := merger.New(&merger.Config{
		Codec:         codec,
		QuadGenerator: idgen.NewRandomQuad(),
	})
	if err != nil {
		return nil, err
	}

	alloc, err := allocator.New(&allocator.Config{
		Records:     recordRepo,
		Boxes:       cfg.Grid.Boxes,
		SlotsPerBox: cfg.Grid.SlotsPerBox,
	})
	if err != nil {
		return nil, err
	}

	return transfer.NewOrchestrator(&transfer.Config{
		SaveData:  savedata.NewFileRepository(),
		Records:   recordRepo,
		Extractor: ext,
		Merger:    mrg,
		Allocator: alloc,
	})
}
