package domain

// Notice categories, matching the alert styles used by the views.
const (
	NoticeSuccess = "success"
	NoticeDanger  = "danger"
	NoticeInfo    = "info"
)

// Notice is a one-shot, user-visible message shown on the next rendered page.
type Notice struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}
