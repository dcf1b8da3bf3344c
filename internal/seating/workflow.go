package seating

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go-seating-client/internal/client"
	"go-seating-client/internal/model"
	apperrors "go-seating-client/pkg/app_errors"
	"go-seating-client/pkg/logger"

	"go.uber.org/zap"
)

// Workflow 將使用者的指派 / 釋放操作轉為確認、請求與重新載入。
// 不重試，也不在本地修改座位狀態。
type Workflow struct {
	manager   *Manager
	requester client.Requester
	navigator client.Navigator
	confirmer client.Confirmer
	current   *url.URL
}

func NewWorkflow(m *Manager, r client.Requester, nav client.Navigator, c client.Confirmer, current *url.URL) *Workflow {
	return &Workflow{
		manager:   m,
		requester: r,
		navigator: nav,
		confirmer: c,
		current:   current,
	}
}

func AssignPath(ticketID, seatID string) string {
	return "/seating/ticket/" + url.PathEscape(ticketID) + "/seat/" + url.PathEscape(seatID)
}

func ReleasePath(ticketID string) string {
	return "/seating/ticket/" + url.PathEscape(ticketID) + "/seat"
}

// reloadOnStatus 成功與 403 / 404 / 500 都以重新載入同步伺服器狀態
func reloadOnStatus(status int) bool {
	switch status {
	case http.StatusNoContent,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusInternalServerError:
		return true
	}
	return false
}

// Assign 以目前選取的票券佔用座位（僅限 occupiable 座位）
func (w *Workflow) Assign(ctx context.Context, seatID string) (*model.Outcome, error) {
	seat := findSeat(w.manager.seats, seatID)
	if seat == nil {
		return nil, apperrors.ErrSeatNotFound
	}
	if seat.seat.State != model.SeatOccupiable {
		return nil, apperrors.ErrSeatNotOccupiable
	}

	selection := w.manager.Selection()
	if selection.Empty() {
		return nil, apperrors.ErrNoTicketSelected
	}

	prompt := fmt.Sprintf("Reserve seat %s with ticket %s?", seat.seat.Label, selection.TicketCode)
	return w.run(ctx, "assign", prompt, http.MethodPost, AssignPath(selection.TicketID, seat.seat.SeatID), selection.TicketID)
}

// Release 釋放目前選取的票券所佔用的座位
func (w *Workflow) Release(ctx context.Context) (*model.Outcome, error) {
	ticket := w.manager.selector.SelectedTicket()
	if ticket == nil {
		return nil, apperrors.ErrNoTicketSelected
	}
	if !ticket.OccupiesSeat() {
		return nil, apperrors.ErrReleaseDisabled
	}

	prompt := fmt.Sprintf("Release seat %s (occupied by ticket %s)?", ticket.SeatLabel, ticket.Code)
	return w.run(ctx, "release", prompt, http.MethodDelete, ReleasePath(ticket.ID), ticket.ID)
}

func (w *Workflow) run(ctx context.Context, operation, prompt, method, path, ticketID string) (*model.Outcome, error) {
	log := logger.WithComponent("workflow").With(
		zap.String("operation", operation),
		zap.String("ticket_id", ticketID),
	)

	outcome := &model.Outcome{}
	if !w.confirmer.Confirm(prompt) {
		log.Debug("Not confirmed")
		return outcome, nil
	}
	outcome.Confirmed = true

	resp, err := w.requester.Send(ctx, method, path)
	if err != nil {
		log.Error("Request failed", zap.Error(err))
		return outcome, fmt.Errorf("%s %s: %w", method, path, err)
	}
	outcome.StatusCode = resp.StatusCode

	if !reloadOnStatus(resp.StatusCode) {
		// 其他狀態碼不處理：不重新載入
		log.Warn("Unhandled response status", zap.Int("status", resp.StatusCode))
		return outcome, nil
	}

	if resp.StatusCode != http.StatusNoContent {
		log.Warn("Request rejected, reloading", zap.Int("status", resp.StatusCode))
	}

	target := client.ReloadTarget(w.current, ticketID)
	outcome.Target = target
	if err := w.navigator.Navigate(ctx, target); err != nil {
		log.Error("Reload failed", zap.String("target", target.String()), zap.Error(err))
		return outcome, fmt.Errorf("reload %s: %w", target, err)
	}
	outcome.Reloaded = true

	log.Info("Reloaded", zap.Int("status", resp.StatusCode), zap.String("target", target.String()))
	return outcome, nil
}
