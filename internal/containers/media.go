package containers

import (
	"context"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// DeleteImpact reports what still references a media asset. Returned by
// RequestDelete so the caller can decide whether to proceed without any UI
// blocking prompt.
type DeleteImpact struct {
	AssetID    string   `json:"assetId"`
	References []string `json:"references,omitempty"`
	Count      int      `json:"count"`
	Deletable  bool     `json:"deletable"`
}

// Media owns the media library. Deletes are guarded: RequestDelete reports
// the usage impact, ConfirmDelete performs the delete (refusing in-use assets
// unless forced).
type Media struct {
	*collection[domain.MediaAsset]
}

// NewMedia rehydrates the media library.
func NewMedia(ctx context.Context, s store.Store, defaults []domain.MediaAsset) *Media {
	return &Media{newCollection(ctx, s, keyMedia, defaults, func(m domain.MediaAsset) string { return m.ID }, false)}
}

// Add registers an uploaded asset.
func (m *Media) Add(ctx context.Context, in domain.MediaAsset) domain.MediaAsset {
	now := time.Now().UTC()
	in.ID = domain.NewID("media", now)
	in.CreatedAt = now
	m.add(ctx, in)
	return in
}

// Attach records that owner references the asset (idempotent).
func (m *Media) Attach(ctx context.Context, id, owner string) error {
	_, err := m.update(ctx, id, func(a *domain.MediaAsset) {
		for _, u := range a.UsedBy {
			if u == owner {
				return
			}
		}
		a.UsedBy = append(a.UsedBy, owner)
	})
	return err
}

// Detach removes owner from the asset's reference list.
func (m *Media) Detach(ctx context.Context, id, owner string) error {
	_, err := m.update(ctx, id, func(a *domain.MediaAsset) {
		kept := a.UsedBy[:0]
		for _, u := range a.UsedBy {
			if u != owner {
				kept = append(kept, u)
			}
		}
		a.UsedBy = kept
	})
	return err
}

// RequestDelete is step one of the guarded delete: it reports which and how
// many references exist. It never mutates state.
func (m *Media) RequestDelete(id string) (DeleteImpact, error) {
	asset, err := m.Get(id)
	if err != nil {
		return DeleteImpact{}, err
	}
	return DeleteImpact{
		AssetID:    asset.ID,
		References: append([]string(nil), asset.UsedBy...),
		Count:      len(asset.UsedBy),
		Deletable:  len(asset.UsedBy) == 0,
	}, nil
}

// ConfirmDelete is step two: it deletes the asset. An asset that still has
// references is refused with ErrAssetInUse unless force is set (the caller
// has shown the impact and the admin confirmed anyway).
func (m *Media) ConfirmDelete(ctx context.Context, id string, force bool) error {
	asset, err := m.Get(id)
	if err != nil {
		return err
	}
	if len(asset.UsedBy) > 0 && !force {
		return ErrAssetInUse
	}
	return m.remove(ctx, id)
}
