// Package seating 實作座位管理頁面的行為：座位分類、票券選擇、
// 座位提示框，以及指派 / 釋放座位的流程。
//
// 頁面載入時只建立一次 Ticket / Seat 紀錄；任何會改變狀態的操作都透過
// 重新載入伺服器頁面完成，不在本地修改紀錄。
package seating

import (
	"fmt"
	"net/url"

	"go-seating-client/internal/client"
	"go-seating-client/internal/model"
	"go-seating-client/internal/page"
	apperrors "go-seating-client/pkg/app_errors"
	"go-seating-client/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	ticketSelectionID  = "ticket-selection"
	releaseTriggerID   = "release-seat-trigger"
	ticketClass        = "ticket"
	ticketCurrentClass = "ticket--current"
	selectorClass      = "ticket-selector"
	selectorOpenClass  = "ticket-selector--open"
	seatContainerClass = "seat-with-tooltip"
	seatClass          = "seat"
	seatCurrentClass   = "seat--managed-current"
	tooltipClass       = "seat-tooltip"
)

type ticketElement struct {
	ticket *model.Ticket
	node   *html.Node
}

type seatElement struct {
	seat      *model.Seat
	container *html.Node
	node      *html.Node
}

// Manager 持有一次頁面載入所建立的紀錄與各個元件
type Manager struct {
	doc *page.Document

	tickets []*ticketElement
	seats   []*seatElement
	managed map[string]bool

	selector *Selector
	tooltips *Tooltips
}

// Init 執行頁面載入流程：建立票券與座位紀錄；
// 有自己管理的票券時分類座位並選取預設票券（preselectedID 或第一張）
func Init(doc *page.Document, preselectedID string) (*Manager, error) {
	log := logger.WithComponent("seating")

	tickets, err := registerTickets(doc)
	if err != nil {
		return nil, err
	}

	managed := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		managed[t.ticket.ID] = true
	}

	seats := registerSeats(doc)

	m := &Manager{
		doc:     doc,
		tickets: tickets,
		seats:   seats,
		managed: managed,
	}
	m.selector = newSelector(doc, tickets, seats)
	m.tooltips = newTooltips(seats, tickets)

	// 沒有自己管理的票券時不分類，座位維持 unclassified
	if len(tickets) > 0 {
		classifySeats(seats, managed)
	}
	m.selector.Initialize(preselectedID)

	log.Debug("Seat management initialized",
		zap.Int("tickets", len(tickets)),
		zap.Int("seats", len(seats)),
		zap.String("selected_ticket_id", m.selector.Selection().TicketID),
	)

	return m, nil
}

func registerTickets(doc *page.Document) ([]*ticketElement, error) {
	container := doc.ByID(ticketSelectionID)
	if container == nil {
		return nil, nil
	}

	var tickets []*ticketElement
	for _, node := range page.Descendants(container, page.WithClass(ticketClass)) {
		id, _ := page.Data(node, "id")
		code, _ := page.Data(node, "code")
		seatLabel, _ := page.Data(node, "seat-label")

		t := &model.Ticket{ID: id, Code: code, SeatLabel: seatLabel}
		if err := model.Validate(t); err != nil {
			return nil, fmt.Errorf("%w: ticket %q: %v", apperrors.ErrInvalidMarkup, id, err)
		}
		tickets = append(tickets, &ticketElement{ticket: t, node: node})
	}
	return tickets, nil
}

// registerSeats 讀取座位的靜態屬性；缺少必要屬性的座位略過，不影響整頁
func registerSeats(doc *page.Document) []*seatElement {
	log := logger.WithComponent("seating")

	var seats []*seatElement
	for _, container := range doc.FindAll(page.WithClass(seatContainerClass)) {
		node := page.FirstDescendant(container, page.WithClass(seatClass))
		if node == nil {
			continue
		}

		s := &model.Seat{}
		s.SeatID, _ = page.Data(container, "seat-id")
		s.Label, _ = page.Data(container, "label")
		s.TicketID, _ = page.Data(container, "ticket-id")
		s.OccupierName, _ = page.Data(container, "occupier-name")
		s.OccupierAvatar, _ = page.Data(container, "occupier-avatar")
		s.State = model.SeatUnclassified

		if err := model.Validate(s); err != nil {
			log.Warn("Skipping seat with invalid markup", zap.String("seat_id", s.SeatID), zap.Error(err))
			continue
		}
		seats = append(seats, &seatElement{seat: s, container: container, node: node})
	}
	return seats
}

func (m *Manager) Document() *page.Document {
	return m.doc
}

func (m *Manager) Selector() *Selector {
	return m.selector
}

func (m *Manager) Tooltips() *Tooltips {
	return m.tooltips
}

func (m *Manager) Selection() model.Selection {
	return m.selector.Selection()
}

func (m *Manager) ReleaseEnabled() bool {
	return m.selector.ReleaseEnabled()
}

// Tickets 依頁面順序回傳自己管理的票券
func (m *Manager) Tickets() []*model.Ticket {
	out := make([]*model.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t.ticket)
	}
	return out
}

// Seats 依頁面順序回傳所有座位
func (m *Manager) Seats() []*model.Seat {
	out := make([]*model.Seat, 0, len(m.seats))
	for _, s := range m.seats {
		out = append(out, s.seat)
	}
	return out
}

func (m *Manager) Ticket(id string) (*model.Ticket, error) {
	if t := findTicket(m.tickets, id); t != nil {
		return t.ticket, nil
	}
	return nil, apperrors.ErrTicketNotFound
}

func (m *Manager) Seat(id string) (*model.Seat, error) {
	if s := findSeat(m.seats, id); s != nil {
		return s.seat, nil
	}
	return nil, apperrors.ErrSeatNotFound
}

// IsManaged 檢查票券是否屬於自己管理的集合
func (m *Manager) IsManaged(ticketID string) bool {
	return m.managed[ticketID]
}

// Workflow 建立指派 / 釋放流程，current 為目前頁面的 URL
func (m *Manager) Workflow(r client.Requester, nav client.Navigator, c client.Confirmer, current *url.URL) *Workflow {
	return NewWorkflow(m, r, nav, c, current)
}

func findTicket(tickets []*ticketElement, id string) *ticketElement {
	for _, t := range tickets {
		if t.ticket.ID == id {
			return t
		}
	}
	return nil
}

func findSeat(seats []*seatElement, id string) *seatElement {
	for _, s := range seats {
		if s.seat.SeatID == id {
			return s
		}
	}
	return nil
}
