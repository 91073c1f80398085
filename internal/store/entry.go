package store

import (
	"context"
	"fmt"
	"strings"

	"game-journal/internal/database"
	"game-journal/internal/model"
	"game-journal/internal/pagination"
)

const entryColumns = `id, owner_id, title, platform, status, rating, created_at, updated_at`

func scanEntry(row interface{ Scan(dest ...any) error }, e *model.JournalEntry) error {
	return row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Title,
		&e.Platform,
		&e.Status,
		&e.Rating,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

// CreateEntry 建立日誌條目，OwnerID 由呼叫端以驗證過的身分填入
func CreateEntry(ctx context.Context, db database.DB, e *model.JournalEntry) (*model.JournalEntry, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO journal_entries (owner_id, title, platform, status, rating)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		e.OwnerID,
		e.Title,
		e.Platform,
		e.Status,
		e.Rating,
	)
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateEntry: %w", err)
	}
	return e, nil
}

// GetEntryByID 查詢條目並以 owner_id 過濾；
// 屬於他人的條目與不存在的條目同樣回傳 ErrNotFound
func GetEntryByID(ctx context.Context, db database.DB, ownerID, entryID int64) (*model.JournalEntry, error) {
	row := db.QueryRow(ctx,
		`SELECT `+entryColumns+`
		 FROM journal_entries WHERE id = $1 AND owner_id = $2`,
		entryID,
		ownerID,
	)
	e := &model.JournalEntry{}
	if err := scanEntry(row, e); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetEntryByID: %w", err)
	}
	return e, nil
}

// ListEntriesByOwner 以 (created_at DESC, id DESC) 鍵集分頁列出條目。
// 多抓一筆探測是否還有下一頁；有下一頁時游標取自最後一筆實際回傳列。
// cur 為 nil 代表從排序起點開始。
func ListEntriesByOwner(ctx context.Context, db database.DB, ownerID int64, limit int, cur *pagination.Cursor) ([]model.JournalEntry, *pagination.Cursor, error) {
	probe := limit + 1

	var (
		rowsSQL string
		args    []any
	)
	if cur == nil {
		rowsSQL = `SELECT ` + entryColumns + `
		 FROM journal_entries
		 WHERE owner_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`
		args = []any{ownerID, probe}
	} else {
		// 游標頁：複合鍵嚴格小於 (created_at, id)，走勢只向更舊的方向
		rowsSQL = `SELECT ` + entryColumns + `
		 FROM journal_entries
		 WHERE owner_id = $1
		   AND (created_at < $2 OR (created_at = $2 AND id < $3))
		 ORDER BY created_at DESC, id DESC
		 LIMIT $4`
		args = []any{ownerID, cur.CreatedAt, cur.ID, probe}
	}

	rows, err := db.Query(ctx, rowsSQL, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("ListEntriesByOwner: %w", err)
	}
	defer rows.Close()

	entries := make([]model.JournalEntry, 0, probe)
	for rows.Next() {
		var e model.JournalEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, nil, fmt.Errorf("ListEntriesByOwner: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("ListEntriesByOwner: %w", err)
	}

	items, next := pagination.Page(entries, limit)
	return items, next, nil
}

// EntryPatch 部分更新欄位，nil 表示不變更
type EntryPatch struct {
	Title    *string
	Platform *string
	Status   *model.EntryStatus
	Rating   *int
}

// IsEmpty 回報是否沒有任何欄位要更新
func (p EntryPatch) IsEmpty() bool {
	return p.Title == nil && p.Platform == nil && p.Status == nil && p.Rating == nil
}

// UpdateEntry 部分更新條目並回傳更新後內容，同樣以 owner_id 過濾
func UpdateEntry(ctx context.Context, db database.DB, ownerID, entryID int64, patch EntryPatch) (*model.JournalEntry, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	n := 1
	if patch.Title != nil {
		set = append(set, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.Platform != nil {
		set = append(set, fmt.Sprintf("platform = $%d", n))
		args = append(args, *patch.Platform)
		n++
	}
	if patch.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", n))
		args = append(args, *patch.Status)
		n++
	}
	if patch.Rating != nil {
		set = append(set, fmt.Sprintf("rating = $%d", n))
		args = append(args, *patch.Rating)
		n++
	}
	set = append(set, "updated_at = now()")
	args = append(args, entryID, ownerID)

	row := db.QueryRow(ctx,
		fmt.Sprintf(`UPDATE journal_entries SET %s
		 WHERE id = $%d AND owner_id = $%d
		 RETURNING `+entryColumns, strings.Join(set, ", "), n, n+1),
		args...,
	)
	e := &model.JournalEntry{}
	if err := scanEntry(row, e); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("UpdateEntry: %w", err)
	}
	return e, nil
}

// DeleteEntry 刪除條目，以 owner_id 過濾；無資料列受影響視為 ErrNotFound
func DeleteEntry(ctx context.Context, db database.DB, ownerID, entryID int64) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND owner_id = $2`,
		entryID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("DeleteEntry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntriesByOwner 清除使用者名下所有條目（刪除帳號後的背景作業）
func DeleteEntriesByOwner(ctx context.Context, db database.DB, ownerID int64) error {
	_, err := db.Exec(ctx,
		`DELETE FROM journal_entries WHERE owner_id = $1`,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("DeleteEntriesByOwner: %w", err)
	}
	return nil
}
