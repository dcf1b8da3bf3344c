package model

// Ticket 由伺服器渲染的票券列（#ticket-selection .ticket）
type Ticket struct {
	ID        string `json:"id" validate:"required"`
	Code      string `json:"code" validate:"required"`
	SeatLabel string `json:"seat_label,omitempty"`
}

// OccupiesSeat 檢查票券是否已佔用座位
func (t *Ticket) OccupiesSeat() bool {
	return t.SeatLabel != ""
}
