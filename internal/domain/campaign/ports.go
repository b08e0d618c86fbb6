package campaign

import "context"

// Summary is a listing entry for stored campaigns
type Summary struct {
	ID        string
	Name      string
	Hour      int64
	Credits   int
	BaseCount int
}

// Repository persists campaign snapshots
type Repository interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, campaignID string) (*Snapshot, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, campaignID string) error
}

// ErrCampaignNotFound indicates an unknown campaign id
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return "campaign not found: " + e.CampaignID
}

// SavegameCodec converts snapshots to and from a portable savegame blob
type SavegameCodec interface {
	Encode(snapshot Snapshot) ([]byte, error)
	Decode(data []byte) (*Snapshot, error)
}
