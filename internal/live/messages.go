package live

// Commands sent to the browser.
const (
	CmdLoad = "load"
	CmdMute = "mute"
	CmdPlay = "play"
)

// Events received from the browser.
const (
	EventReady       = "ready"
	EventEnded       = "ended"
	EventState       = "state"
	EventPlayResult  = "play-result"
	EventInteraction = "interaction"
	EventJump        = "jump"
)

// Command is a server to browser message.
type Command struct {
	Cmd   string `json:"cmd"`
	Src   string `json:"src,omitempty"`
	Muted *bool  `json:"muted,omitempty"`
	ID    uint64 `json:"id,omitempty"`
}

// Event is a browser to server message. Error carries the DOMException name
// of a rejected play request, empty on success.
type Event struct {
	Type    string `json:"type"`
	ID      uint64 `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Paused  *bool  `json:"paused,omitempty"`
	Index   *int   `json:"index,omitempty"`
}
