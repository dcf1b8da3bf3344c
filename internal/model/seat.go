package model

// SeatState 座位分類
type SeatState string

const (
	// 頁面沒有自己管理的票券時不分類
	SeatUnclassified SeatState = "unclassified"
	// 已被非自己管理的票券佔用
	SeatOccupied     SeatState = "occupied"
	SeatOccupiable   SeatState = "occupiable"
	SeatManaged      SeatState = "managed"
)

// IsValid 驗證狀態是否有效
func (s SeatState) IsValid() bool {
	switch s {
	case SeatUnclassified, SeatOccupied, SeatOccupiable, SeatManaged:
		return true
	}
	return false
}

// CSSClass 回傳標記在 .seat 元素上的 class，佔用中的座位沒有標記
func (s SeatState) CSSClass() string {
	switch s {
	case SeatOccupiable:
		return "seat--occupiable"
	case SeatManaged:
		return "seat--managed"
	}
	return ""
}

// Seat 座位快照，從伺服器渲染的 .seat-with-tooltip 容器讀取
type Seat struct {
	SeatID         string    `json:"seat_id" validate:"required"`
	Label          string    `json:"label" validate:"required"`
	TicketID       string    `json:"ticket_id,omitempty"`
	OccupierName   string    `json:"occupier_name,omitempty"`
	OccupierAvatar string    `json:"occupier_avatar,omitempty"`
	State          SeatState `json:"state"`
	Current        bool      `json:"current"`
}

// IsOccupied 檢查座位是否有票券
func (s *Seat) IsOccupied() bool {
	return s.TicketID != ""
}

// HasOccupier 檢查是否有可顯示的佔用者資訊
func (s *Seat) HasOccupier() bool {
	return s.OccupierName != ""
}
