package seating

import (
	"go-seating-client/internal/model"
	"go-seating-client/internal/page"
)

// classifySeats 依 data-ticket-id 與自己管理的票券集合分類座位並標記 class：
// 沒有票券的座位為 occupiable，由自己管理的票券佔用為 managed，其他為 occupied 且不標記。
// 只依據 markup 中的靜態屬性，重複執行結果相同。
func classifySeats(seats []*seatElement, managed map[string]bool) {
	for _, s := range seats {
		s.seat.State = classify(s.seat, managed)

		page.RemoveClass(s.node, model.SeatOccupiable.CSSClass())
		page.RemoveClass(s.node, model.SeatManaged.CSSClass())
		if class := s.seat.State.CSSClass(); class != "" {
			page.AddClass(s.node, class)
		}
	}
}

func classify(s *model.Seat, managed map[string]bool) model.SeatState {
	switch {
	case !s.IsOccupied():
		return model.SeatOccupiable
	case managed[s.TicketID]:
		return model.SeatManaged
	default:
		return model.SeatOccupied
	}
}
