package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor 指向前一頁最後一筆資料的複合排序鍵 (created_at, id)。
// 對外以 base64 編碼呈現，客戶端不可自行組裝或修改。
type Cursor struct {
	CreatedAt time.Time
	ID        int64
}

// ErrInvalidCursor 游標格式錯誤
var ErrInvalidCursor = errors.New("invalid cursor")

// Encode 將游標編碼為不透明字串，時間取微秒以保留 timestamptz 精度
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d_%d", c.CreatedAt.UnixMicro(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode 解碼游標字串，為 Encode 的反函式
func Decode(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	parts := strings.SplitN(string(raw), "_", 2)
	if len(parts) != 2 {
		return Cursor{}, ErrInvalidCursor
	}
	usec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{CreatedAt: time.UnixMicro(usec).UTC(), ID: id}, nil
}
