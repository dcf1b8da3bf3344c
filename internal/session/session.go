package session

import (
	"context"
	"fmt"
	"net/url"

	"go-seating-client/internal/client"
	"go-seating-client/internal/model"
	"go-seating-client/internal/page"
	"go-seating-client/internal/seating"
	apperrors "go-seating-client/pkg/app_errors"
	"go-seating-client/pkg/logger"

	"go.uber.org/zap"
)

// Session 代表瀏覽器分頁：持有目前載入的頁面，每次狀態變更後重新載入。
// 只能在單一 goroutine 中使用。
type Session struct {
	client    *client.Client
	confirmer client.Confirmer

	url     *url.URL
	manager *seating.Manager
}

func New(c *client.Client, confirmer client.Confirmer) *Session {
	return &Session{client: c, confirmer: confirmer}
}

// Open 載入座位管理頁面，ref 可為相對路徑（可帶 ?ticket=）
func (s *Session) Open(ctx context.Context, ref string) error {
	target, err := s.client.Resolve(ref)
	if err != nil {
		return err
	}
	return s.Navigate(ctx, target)
}

// Navigate 取得目標頁面並從新的 markup 重新初始化，
// ticket query 參數作為預選票券
func (s *Session) Navigate(ctx context.Context, target *url.URL) error {
	log := logger.WithComponent("session").With(zap.String("url", target.String()))

	body, final, err := s.client.Fetch(ctx, target)
	if err != nil {
		return err
	}
	defer body.Close()

	doc, err := page.Parse(body)
	if err != nil {
		return err
	}

	manager, err := seating.Init(doc, final.Query().Get("ticket"))
	if err != nil {
		log.Error("Failed to initialize page", zap.Error(err))
		return fmt.Errorf("initialize %s: %w", final, err)
	}

	s.url = final
	s.manager = manager
	log.Debug("Page loaded", zap.String("selected_ticket_id", manager.Selection().TicketID))
	return nil
}

func (s *Session) URL() *url.URL {
	if s.url == nil {
		return nil
	}
	u := *s.url
	return &u
}

func (s *Session) Manager() *seating.Manager {
	return s.manager
}

func (s *Session) Document() *page.Document {
	if s.manager == nil {
		return nil
	}
	return s.manager.Document()
}

func (s *Session) workflow() *seating.Workflow {
	return s.manager.Workflow(s.client, s, s.confirmer, s.URL())
}

// Assign 以目前選取的票券佔用座位，完成後頁面會重新載入
func (s *Session) Assign(ctx context.Context, seatID string) (*model.Outcome, error) {
	if s.manager == nil {
		return nil, apperrors.ErrPageNotLoaded
	}
	return s.workflow().Assign(ctx, seatID)
}

// Release 釋放目前選取的票券所佔用的座位，完成後頁面會重新載入
func (s *Session) Release(ctx context.Context) (*model.Outcome, error) {
	if s.manager == nil {
		return nil, apperrors.ErrPageNotLoaded
	}
	return s.workflow().Release(ctx)
}

func (s *Session) SelectTicket(ticketID string) error {
	if s.manager == nil {
		return apperrors.ErrPageNotLoaded
	}
	return s.manager.Selector().ClickTicket(ticketID)
}
