package model

import "net/url"

// Selection 目前選取的票券，只會由 Selector.Select 修改
type Selection struct {
	TicketID   string `json:"ticket_id"`
	TicketCode string `json:"ticket_code"`
}

func (s Selection) Empty() bool {
	return s.TicketID == ""
}

// Outcome 一次指派 / 釋放流程的結果
type Outcome struct {
	Confirmed  bool     `json:"confirmed"`
	StatusCode int      `json:"status_code,omitempty"`
	Reloaded   bool     `json:"reloaded"`
	Target     *url.URL `json:"-"`
}
