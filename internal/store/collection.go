package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// LoadCollection rehydrates an entity collection from the document under key,
// merged additively over compiled-in defaults: stored records win on id
// collision, defaults missing from storage are appended in their compiled-in
// order. The stored records keep their stored order.
//
// A missing document yields the defaults. A malformed document is logged and
// also yields the defaults; it is never a hard failure.
func LoadCollection[T any](ctx context.Context, s Store, key string, defaults []T, idOf func(T) string) []T {
	raw, err := s.Load(ctx, key)
	if err != nil {
		if err != ErrNoDocument {
			log.Warn().Err(err).Str("key", key).Msg("document load failed, using defaults")
		}
		return append([]T(nil), defaults...)
	}

	var stored []T
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed document, using defaults")
		return append([]T(nil), defaults...)
	}

	seen := make(map[string]struct{}, len(stored))
	for _, it := range stored {
		seen[idOf(it)] = struct{}{}
	}
	out := stored
	for _, def := range defaults {
		if _, ok := seen[idOf(def)]; !ok {
			out = append(out, def)
		}
	}
	return out
}

// SaveCollection persists the full collection under key. Failures are logged
// and swallowed so a storage hiccup never breaks the mutation that triggered
// the write.
func SaveCollection[T any](ctx context.Context, s Store, key string, items []T) {
	raw, err := json.Marshal(items)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("collection marshal failed")
		return
	}
	if err := s.Save(ctx, key, raw); err != nil {
		log.Error().Err(err).Str("key", key).Msg("collection save failed")
	}
}

// LoadObject rehydrates a single settings-style document (cart, tax settings,
// SEO, last order). Missing or malformed documents yield the given default.
func LoadObject[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Load(ctx, key)
	if err != nil {
		if err != ErrNoDocument {
			log.Warn().Err(err).Str("key", key).Msg("document load failed, using default")
		}
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed document, using default")
		return def
	}
	return out
}

// SaveObject persists a single settings-style document under key,
// fire-and-forget like SaveCollection.
func SaveObject[T any](ctx context.Context, s Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("document marshal failed")
		return
	}
	if err := s.Save(ctx, key, raw); err != nil {
		log.Error().Err(err).Str("key", key).Msg("document save failed")
	}
}
