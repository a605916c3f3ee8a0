package queue

import "encoding/json"

// Message is the queue payload handed to the worker. Version guards
// against consumers reading a payload shape they do not understand.
type Message struct {
	AnalysisID string `json:"analysisId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(payload, &msg)
	return msg, err
}
