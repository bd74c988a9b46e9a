package postgresadapter

import (
	"strings"
	"time"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
)

type itemModel struct {
	ItemID        string    `gorm:"column:item_id;primaryKey"`
	ExternalRef   string    `gorm:"column:external_ref;uniqueIndex:ux_items_external_ref"`
	OwnerID       string    `gorm:"column:owner_id"`
	Prompt        string    `gorm:"column:prompt"`
	MediaLocation string    `gorm:"column:media_location"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (itemModel) TableName() string { return "gallery_items" }

type voteModel struct {
	ItemID      string    `gorm:"column:item_id;primaryKey"`
	VoterID     string    `gorm:"column:voter_id;primaryKey"`
	ExternalRef string    `gorm:"column:external_ref"`
	CreatedAt   time.Time `gorm:"column:created_at"`

	Item itemModel `gorm:"foreignKey:ItemID;references:ItemID;constraint:OnDelete:CASCADE"`
}

func (voteModel) TableName() string { return "item_votes" }

func itemModelFromEntity(item entities.Item) itemModel {
	return itemModel{
		ItemID:        strings.TrimSpace(item.ItemID),
		ExternalRef:   strings.TrimSpace(item.ExternalRef),
		OwnerID:       strings.TrimSpace(item.OwnerID),
		Prompt:        item.Prompt,
		MediaLocation: strings.TrimSpace(item.MediaLocation),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func (m itemModel) toEntity() entities.Item {
	return entities.Item{
		ItemID:        m.ItemID,
		ExternalRef:   m.ExternalRef,
		OwnerID:       m.OwnerID,
		Prompt:        m.Prompt,
		MediaLocation: m.MediaLocation,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ItemID:      strings.TrimSpace(vote.ItemID),
		VoterID:     strings.TrimSpace(vote.VoterID),
		ExternalRef: strings.TrimSpace(vote.ExternalRef),
		CreatedAt:   vote.CreatedAt,
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		ItemID:      m.ItemID,
		VoterID:     m.VoterID,
		ExternalRef: m.ExternalRef,
		CreatedAt:   m.CreatedAt,
	}
}
