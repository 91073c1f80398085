package pagination

import "game-journal/internal/model"

// Page 修剪一次 limit+1 探測查詢的結果。
// rows 必須是以 (created_at DESC, id DESC) 排序、最多 limit+1 筆的查詢結果；
// 若剛好多出一筆代表還有下一頁，回傳前 limit 筆與以最後一筆實際回傳列
// （非探測列）組成的游標；否則游標為 nil 表示已到底。
func Page(rows []model.JournalEntry, limit int) ([]model.JournalEntry, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	items := rows[:limit]
	last := items[len(items)-1]
	return items, &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
}
