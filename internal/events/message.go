package events

import "github.com/shutterbox/shutterbox_server/internal/gallery"

type MessageType string

const (
	MessageTypeConnected MessageType = "connected"
	MessageTypeUpload    MessageType = "upload"
	MessageTypePing      MessageType = "ping"
	MessageTypePong      MessageType = "pong"
)

type IncomingMessage struct {
	Type MessageType `json:"type"`
}

type OutgoingMessage struct {
	Type MessageType `json:"type"`
}

// UploadMessage is pushed to every connected client when an upload completes,
// so open galleries can show new images without polling.
type UploadMessage struct {
	Type   MessageType           `json:"type"`
	Upload *gallery.UploadResult `json:"upload"`
}
