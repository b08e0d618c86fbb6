package base

import (
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// ErrInsufficientStock indicates a storage withdrawal larger than the stock
type ErrInsufficientStock struct {
	BaseID    string
	ItemID    string
	Requested int
	Available int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("base %s: cannot take %d x %s, only %d stored", e.BaseID, e.Requested, e.ItemID, e.Available)
}

// ErrNoHangarSpace indicates a full aircraft hangar
type ErrNoHangarSpace struct {
	BaseID string
	Size   production.HangarSize
}

func (e *ErrNoHangarSpace) Error() string {
	return fmt.Sprintf("base %s: no free %s hangar", e.BaseID, e.Size)
}

// ErrNoUFOStored indicates a UFO hangar release with nothing stored
type ErrNoUFOStored struct {
	BaseID string
	Size   production.HangarSize
}

func (e *ErrNoUFOStored) Error() string {
	return fmt.Sprintf("base %s: no %s UFO stored", e.BaseID, e.Size)
}
