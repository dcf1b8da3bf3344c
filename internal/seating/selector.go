package seating

import (
	"go-seating-client/internal/model"
	"go-seating-client/internal/page"
	apperrors "go-seating-client/pkg/app_errors"

	"golang.org/x/net/html"
)

// Selector 持有目前選取的票券。所有選取變更都經過 Select，
// 確保頁面上最多只有一張票券與其座位帶有 current 標記。
type Selector struct {
	tickets []*ticketElement
	seats   []*seatElement

	selection model.Selection

	container      *html.Node // #ticket-selection
	panel          *html.Node // .ticket-selector
	releaseTrigger *html.Node // #release-seat-trigger
}

func newSelector(doc *page.Document, tickets []*ticketElement, seats []*seatElement) *Selector {
	return &Selector{
		tickets:        tickets,
		seats:          seats,
		container:      doc.ByID(ticketSelectionID),
		panel:          doc.First(page.WithClass(selectorClass)),
		releaseTrigger: doc.ByID(releaseTriggerID),
	}
}

// Initialize 選取 preselectedID 對應的票券，找不到時選取第一張；
// 沒有任何票券時只停用釋放按鈕
func (s *Selector) Initialize(preselectedID string) {
	if len(s.tickets) == 0 {
		s.setReleaseDisabled(true)
		return
	}

	target := s.tickets[0]
	if preselectedID != "" {
		if t := findTicket(s.tickets, preselectedID); t != nil {
			target = t
		}
	}
	s.selectElement(target)
}

// Select 將 ticket 設為目前選取的票券
func (s *Selector) Select(ticket *model.Ticket) error {
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}
	t := findTicket(s.tickets, ticket.ID)
	if t == nil {
		return apperrors.ErrTicketNotFound
	}
	s.selectElement(t)
	return nil
}

// ClickTicket 對應點擊票券列
func (s *Selector) ClickTicket(ticketID string) error {
	t := findTicket(s.tickets, ticketID)
	if t == nil {
		return apperrors.ErrTicketNotFound
	}
	s.selectElement(t)
	return nil
}

func (s *Selector) selectElement(t *ticketElement) {
	s.selection = model.Selection{TicketID: t.ticket.ID, TicketCode: t.ticket.Code}

	if s.container != nil {
		page.SetData(s.container, "selected-id", t.ticket.ID)
		page.SetData(s.container, "selected-code", t.ticket.Code)
	}

	for _, other := range s.tickets {
		page.RemoveClass(other.node, ticketCurrentClass)
	}
	page.AddClass(t.node, ticketCurrentClass)

	s.markCurrentSeat(t.ticket.ID)

	s.setReleaseDisabled(!t.ticket.OccupiesSeat())
}

// markCurrentSeat 清除所有座位的 current 標記，再標記該票券佔用的 managed 座位
func (s *Selector) markCurrentSeat(ticketID string) {
	for _, seat := range s.seats {
		seat.seat.Current = false
		page.RemoveClass(seat.node, seatCurrentClass)
	}
	for _, seat := range s.seats {
		if seat.seat.State == model.SeatManaged && seat.seat.TicketID == ticketID {
			seat.seat.Current = true
			page.AddClass(seat.node, seatCurrentClass)
		}
	}
}

func (s *Selector) setReleaseDisabled(disabled bool) {
	if s.releaseTrigger == nil {
		return
	}
	if disabled {
		page.SetAttr(s.releaseTrigger, "disabled", "")
	} else {
		page.RemoveAttr(s.releaseTrigger, "disabled")
	}
}

// Toggle 切換票券選擇面板的開關狀態，回傳切換後是否開啟
func (s *Selector) Toggle() bool {
	if s.panel == nil {
		return false
	}
	return page.ToggleClass(s.panel, selectorOpenClass)
}

func (s *Selector) IsOpen() bool {
	return s.panel != nil && page.HasClass(s.panel, selectorOpenClass)
}

func (s *Selector) Selection() model.Selection {
	return s.selection
}

// SelectedTicket 回傳目前選取的票券，沒有選取時回傳 nil
func (s *Selector) SelectedTicket() *model.Ticket {
	if s.selection.Empty() {
		return nil
	}
	if t := findTicket(s.tickets, s.selection.TicketID); t != nil {
		return t.ticket
	}
	return nil
}

// ReleaseEnabled 只有選取的票券佔用座位時才能釋放
func (s *Selector) ReleaseEnabled() bool {
	t := s.SelectedTicket()
	return t != nil && t.OccupiesSeat()
}
