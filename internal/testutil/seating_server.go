// Package testutil 提供測試用的座位伺服器：以 gin 渲染座位管理頁面，
// 並處理指派 / 釋放座位的請求。
package testutil

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FakeTicket struct {
	ID   string
	Code string
}

type FakeSeat struct {
	ID             string
	Label          string
	TicketID       string
	OccupierName   string
	OccupierAvatar string
}

type RecordedRequest struct {
	Method string
	Path   string
}

type SeatingServer struct {
	mu sync.Mutex

	tickets []*FakeTicket
	seats   []*FakeSeat

	// 不為 0 時，所有指派 / 釋放請求都直接回傳這個狀態碼
	forcedStatus int
	requests     []RecordedRequest
	flashes      []string

	router *gin.Engine
	server *httptest.Server
}

const managePage = `<!DOCTYPE html>
<html><head><title>{{.Slug}}</title></head><body>
<div class="ticket-selector">
  <div id="ticket-selection">
  {{- range .Tickets}}
    <div class="ticket" data-id="{{.ID}}" data-code="{{.Code}}"{{if .SeatLabel}} data-seat-label="{{.SeatLabel}}"{{end}}>{{.Code}}</div>
  {{- end}}
  </div>
</div>
<button id="release-seat-trigger">Release seat</button>
<div class="area">
{{- range .Seats}}
  <div class="seat-with-tooltip" data-seat-id="{{.ID}}" data-label="{{.Label}}"{{if .TicketID}} data-ticket-id="{{.TicketID}}"{{end}}{{if .OccupierName}} data-occupier-name="{{.OccupierName}}" data-occupier-avatar="{{.OccupierAvatar}}"{{end}}><div class="seat"></div></div>
{{- end}}
</div>
<ul class="flashes">{{range .Flashes}}<li>{{.}}</li>{{end}}</ul>
</body></html>`

type ticketView struct {
	ID        string
	Code      string
	SeatLabel string
}

type pageView struct {
	Slug    string
	Tickets []ticketView
	Seats   []*FakeSeat
	Flashes []string
}

var pageTemplate = template.Must(template.New("manage").Parse(managePage))

// NewSeatingServer 建立 router 但不啟動；需要 HTTP 時呼叫 Start
func NewSeatingServer(tickets []*FakeTicket, seats []*FakeSeat) *SeatingServer {
	gin.SetMode(gin.TestMode)

	s := &SeatingServer{
		tickets: tickets,
		seats:   seats,
		router:  gin.New(),
	}
	s.router.SetHTMLTemplate(pageTemplate)
	s.registerRoutes()
	return s
}

func (s *SeatingServer) registerRoutes() {
	r := s.router.Group("/seating")
	{
		r.GET("areas/:slug/manage_seats", s.managePage)
		r.POST("ticket/:ticketID/seat/:seatID", s.occupySeat)
		r.DELETE("ticket/:ticketID/seat", s.releaseSeat)
	}
}

// Start 以 httptest 啟動伺服器，測試結束時自動關閉
func (s *SeatingServer) Start(t testing.TB) *SeatingServer {
	s.server = httptest.NewServer(s.router)
	t.Cleanup(s.server.Close)
	return s
}

func (s *SeatingServer) URL() string {
	return s.server.URL
}

func (s *SeatingServer) HTTPClient() *http.Client {
	return s.server.Client()
}

func (s *SeatingServer) ManagePath(slug string) string {
	return "/seating/areas/" + slug + "/manage_seats"
}

// ForceStatus 讓之後的指派 / 釋放請求回傳固定狀態碼，0 表示恢復正常處理
func (s *SeatingServer) ForceStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedStatus = status
}

func (s *SeatingServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// SeatOf 回傳票券佔用的座位 ID
func (s *SeatingServer) SeatOf(ticketID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seat := s.seatHeldBy(ticketID); seat != nil {
		return seat.ID
	}
	return ""
}

// ManagePageHTML 直接渲染目前狀態的頁面，供不需要 HTTP 的測試使用
func (s *SeatingServer) ManagePageHTML(slug string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, s.view(slug)); err != nil {
		panic(err)
	}
	return buf.String()
}

func (s *SeatingServer) view(slug string) pageView {
	v := pageView{Slug: slug, Seats: s.seats, Flashes: s.flashes}
	for _, t := range s.tickets {
		tv := ticketView{ID: t.ID, Code: t.Code}
		if seat := s.seatHeldBy(t.ID); seat != nil {
			tv.SeatLabel = seat.Label
		}
		v.Tickets = append(v.Tickets, tv)
	}
	return v
}

func (s *SeatingServer) managePage(c *gin.Context) {
	s.mu.Lock()
	view := s.view(c.Param("slug"))
	// flash 訊息只顯示一次
	s.flashes = nil
	s.mu.Unlock()

	c.HTML(http.StatusOK, "manage", view)
}

func (s *SeatingServer) occupySeat(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(c)

	if s.forcedStatus != 0 {
		c.Status(s.forcedStatus)
		return
	}

	ticket := s.ticket(c.Param("ticketID"))
	seat := s.seat(c.Param("seatID"))
	if ticket == nil || seat == nil {
		c.Status(http.StatusNotFound)
		return
	}

	if seat.TicketID != "" {
		s.flashes = append(s.flashes, fmt.Sprintf("%s is already occupied.", seat.Label))
		c.Status(http.StatusNoContent)
		return
	}

	if previous := s.seatHeldBy(ticket.ID); previous != nil {
		previous.TicketID = ""
	}
	seat.TicketID = ticket.ID
	s.flashes = append(s.flashes, fmt.Sprintf("%s has been occupied with ticket %s.", seat.Label, ticket.Code))
	c.Status(http.StatusNoContent)
}

func (s *SeatingServer) releaseSeat(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(c)

	if s.forcedStatus != 0 {
		c.Status(s.forcedStatus)
		return
	}

	ticket := s.ticket(c.Param("ticketID"))
	if ticket == nil {
		c.Status(http.StatusNotFound)
		return
	}

	seat := s.seatHeldBy(ticket.ID)
	if seat == nil {
		s.flashes = append(s.flashes, fmt.Sprintf("Ticket %s occupies no seat.", ticket.Code))
		c.Status(http.StatusNoContent)
		return
	}

	seat.TicketID = ""
	s.flashes = append(s.flashes, fmt.Sprintf("%s has been released.", seat.Label))
	c.Status(http.StatusNoContent)
}

func (s *SeatingServer) record(c *gin.Context) {
	s.requests = append(s.requests, RecordedRequest{Method: c.Request.Method, Path: c.Request.URL.Path})
}

func (s *SeatingServer) ticket(id string) *FakeTicket {
	for _, t := range s.tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *SeatingServer) seat(id string) *FakeSeat {
	for _, seat := range s.seats {
		if seat.ID == id {
			return seat
		}
	}
	return nil
}

func (s *SeatingServer) seatHeldBy(ticketID string) *FakeSeat {
	for _, seat := range s.seats {
		if seat.TicketID == ticketID {
			return seat
		}
	}
	return nil
}

// ScenarioFixture 兩張自己管理的票券（1/A1 無座位、2/A2 佔用 B4），
// 一個空位 C3，以及一個被他人佔用的座位 D1
func ScenarioFixture() *SeatingServer {
	return NewSeatingServer(
		[]*FakeTicket{
			{ID: "1", Code: "A1"},
			{ID: "2", Code: "A2"},
		},
		[]*FakeSeat{
			{ID: "s-b4", Label: "B4", TicketID: "2"},
			{ID: "s-c3", Label: "C3"},
			{ID: "s-d1", Label: "D1", TicketID: "99", OccupierName: `<script>alert("x")</script>`, OccupierAvatar: "/avatars/99.png"},
		},
	)
}

// RandomFixture 以 UUID 產生 n 張票券與 n+1 個空座位
func RandomFixture(n int) *SeatingServer {
	var tickets []*FakeTicket
	var seats []*FakeSeat
	for i := 0; i < n; i++ {
		tickets = append(tickets, &FakeTicket{ID: uuid.NewString(), Code: fmt.Sprintf("T%02d", i+1)})
	}
	for i := 0; i <= n; i++ {
		seats = append(seats, &FakeSeat{ID: uuid.NewString(), Label: fmt.Sprintf("R1-%d", i+1)})
	}
	return NewSeatingServer(tickets, seats)
}

// Tickets 回傳票券 ID（依頁面順序）
func (s *SeatingServer) Tickets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.tickets))
	for _, t := range s.tickets {
		ids = append(ids, t.ID)
	}
	return ids
}

// Seats 回傳座位 ID（依頁面順序）
func (s *SeatingServer) Seats() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.seats))
	for _, seat := range s.seats {
		ids = append(ids, seat.ID)
	}
	return ids
}
