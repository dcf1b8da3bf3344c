package seating

import (
	"go-seating-client/internal/model"
	"go-seating-client/internal/page"
	apperrors "go-seating-client/pkg/app_errors"

	"golang.org/x/net/html"
)

type Tooltips struct {
	seats   []*seatElement
	tickets []*ticketElement
}

func newTooltips(seats []*seatElement, tickets []*ticketElement) *Tooltips {
	return &Tooltips{seats: seats, tickets: tickets}
}

// PointerEnter 在座位容器中加入提示框並回傳該節點。
// 已有提示框時會先移除，每個座位最多只有一個。
func (t *Tooltips) PointerEnter(seatID string) (*html.Node, error) {
	s := findSeat(t.seats, seatID)
	if s == nil {
		return nil, apperrors.ErrSeatNotFound
	}

	removeTooltip(s)
	tooltip := t.build(s.seat)
	s.container.AppendChild(tooltip)
	return tooltip, nil
}

// PointerLeave 移除提示框。提示框不存在時（例如重新載入前游標已在座位上）不視為錯誤。
func (t *Tooltips) PointerLeave(seatID string) error {
	s := findSeat(t.seats, seatID)
	if s == nil {
		return apperrors.ErrSeatNotFound
	}
	removeTooltip(s)
	return nil
}

// Current 回傳座位目前顯示中的提示框
func (t *Tooltips) Current(seatID string) *html.Node {
	s := findSeat(t.seats, seatID)
	if s == nil {
		return nil
	}
	return currentTooltip(s)
}

// Render 產生座位提示框的 HTML，不修改頁面
func (t *Tooltips) Render(seatID string) (string, error) {
	s := findSeat(t.seats, seatID)
	if s == nil {
		return "", apperrors.ErrSeatNotFound
	}
	return page.RenderNode(t.build(s.seat)), nil
}

func (t *Tooltips) build(seat *model.Seat) *html.Node {
	tooltip := page.NewElement("div", tooltipClass)

	label := page.NewElement("div", "seat-label")
	label.AppendChild(page.NewText(seat.Label))
	tooltip.AppendChild(label)

	if !seat.IsOccupied() {
		return tooltip
	}

	if seat.State == model.SeatManaged {
		if ticket := findTicket(t.tickets, seat.TicketID); ticket != nil {
			tooltip.AppendChild(ticketCodeBlock(ticket.ticket.Code))
		}
	}

	if seat.HasOccupier() {
		tooltip.AppendChild(occupierBlock(seat.OccupierName, seat.OccupierAvatar))
	}

	return tooltip
}

func ticketCodeBlock(code string) *html.Node {
	block := page.NewElement("div", "seat-ticket-code")
	block.AppendChild(dimmed("Ticket:"))
	block.AppendChild(page.NewText(" "))
	block.AppendChild(strong(code))
	return block
}

// occupierBlock 顯示名稱以文字節點加入，輸出時會被跳脫
func occupierBlock(name, avatar string) *html.Node {
	block := page.NewElement("div", "seat-occupier")

	avatarBlock := page.NewElement("div", "seat-occupier-avatar")
	frame := page.NewElement("div", "avatar", "size-48")
	if avatar != "" {
		img := page.NewElement("img")
		page.SetAttr(img, "src", avatar)
		frame.AppendChild(img)
	}
	avatarBlock.AppendChild(frame)
	block.AppendChild(avatarBlock)

	nameBlock := page.NewElement("div", "seat-occupier-name")
	nameBlock.AppendChild(dimmed("reserved by"))
	nameBlock.AppendChild(page.NewElement("br"))
	nameBlock.AppendChild(strong(name))
	block.AppendChild(nameBlock)

	return block
}

func dimmed(text string) *html.Node {
	span := page.NewElement("span", "dimmed")
	span.AppendChild(page.NewText(text))
	return span
}

func strong(text string) *html.Node {
	n := page.NewElement("strong")
	n.AppendChild(page.NewText(text))
	return n
}

func currentTooltip(s *seatElement) *html.Node {
	for c := s.container.FirstChild; c != nil; c = c.NextSibling {
		if page.HasClass(c, tooltipClass) {
			return c
		}
	}
	return nil
}

func removeTooltip(s *seatElement) {
	page.Remove(currentTooltip(s))
}
