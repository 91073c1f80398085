package model

import "time"

// EntryStatus 遊戲日誌狀態
type EntryStatus string

const (
	StatusStarted   EntryStatus = "started"
	StatusCompleted EntryStatus = "completed"
	StatusDropped   EntryStatus = "dropped"
	StatusPaused    EntryStatus = "paused"
	StatusRevisited EntryStatus = "revisited"
)

// Valid 回報 s 是否為已知狀態
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusStarted, StatusCompleted, StatusDropped, StatusPaused, StatusRevisited:
		return true
	}
	return false
}

// JournalEntry 遊戲日誌條目，OwnerID 建立後不可變更
type JournalEntry struct {
	ID        int64       `db:"id" json:"id"`
	OwnerID   int64       `db:"owner_id" json:"-"`
	Title     string      `db:"title" json:"title"`
	Platform  string      `db:"platform" json:"platform"`
	Status    EntryStatus `db:"status" json:"status"`
	Rating    int         `db:"rating" json:"rating"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}
