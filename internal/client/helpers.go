package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go-seating-client/pkg/logger"

	"go.uber.org/zap"
)

// Confirmer 在送出會改變狀態的請求前要求使用者確認
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(string) bool { return false })
)

// PromptConfirmer 將提示寫到 Out，從 In 讀取一行，只有 y / yes 視為確認
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

func (p *PromptConfirmer) Confirm(prompt string) bool {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}
	fmt.Fprintf(p.Out, "%s [y/N] ", prompt)
	if !p.scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// ReloadTarget 以目前頁面的路徑加上 ?ticket={ticketID} 作為重新載入的目標，
// 原本的 query 與 fragment 都會被捨棄
func ReloadTarget(current *url.URL, ticketID string) *url.URL {
	target := *current
	target.RawQuery = url.Values{"ticket": {ticketID}}.Encode()
	target.Fragment = ""
	target.RawFragment = ""
	return &target
}

// RequestThenRedirect 送出請求，回應 204 且帶有 Location 時導向該位置。
// 回傳是否有導向。
func RequestThenRedirect(ctx context.Context, r Requester, nav Navigator, base *url.URL, method, path string) (bool, error) {
	resp, err := r.Send(ctx, method, path)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusNoContent || resp.Location == "" {
		return false, nil
	}

	location, err := url.Parse(resp.Location)
	if err != nil {
		logger.WithComponent("client").Warn("Invalid Location header", zap.String("location", resp.Location), zap.Error(err))
		return false, nil
	}
	return true, nav.Navigate(ctx, base.ResolveReference(location))
}

// RequestThenReload 送出請求，回應 204 時重新載入 current
func RequestThenReload(ctx context.Context, r Requester, nav Navigator, current *url.URL, method, path string) (bool, error) {
	resp, err := r.Send(ctx, method, path)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusNoContent {
		return false, nil
	}
	return true, nav.Navigate(ctx, current)
}

func ConfirmedRequestThenRedirect(ctx context.Context, c Confirmer, prompt string, r Requester, nav Navigator, base *url.URL, method, path string) (bool, error) {
	if !c.Confirm(prompt) {
		return false, nil
	}
	return RequestThenRedirect(ctx, r, nav, base, method, path)
}

func ConfirmedRequestThenReload(ctx context.Context, c Confirmer, prompt string, r Requester, nav Navigator, current *url.URL, method, path string) (bool, error) {
	if !c.Confirm(prompt) {
		return false, nil
	}
	return RequestThenReload(ctx, r, nav, current, method, path)
}
