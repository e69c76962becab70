package domain

// UIState is the transient state of one interactive session. Values are
// snapshots: transitions build a new UIState instead of mutating one.
type UIState struct {
	URL     string            `json:"url"`
	Loading bool              `json:"loading"`
	Error   *string           `json:"error,omitempty"`
	Result  *ExtractionResult `json:"result,omitempty"`
}

// ErrorText returns the user-visible error or "".
func (s UIState) ErrorText() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}
