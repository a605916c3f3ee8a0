// Package workerproc validates and dispatches queue payloads. It is
// transport-agnostic so the long-polling worker and tests share one path.
package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"resume-screener/internal/analyses"
	"resume-screener/internal/queue"
)

// MessageMeta describes a raw payload without exposing its contents.
// The SHA lets operators correlate a poison message with queue dumps.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

func ComputeMeta(body string) MessageMeta {
	meta := MessageMeta{BodyLen: len(body)}
	if meta.BodyLen > 0 {
		sum := sha256.Sum256([]byte(body))
		meta.BodySHA = hex.EncodeToString(sum[:])
	}
	return meta
}

// ErrEmptyBody reports a payload with no content.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode reports a payload that is not valid message JSON.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("decode message: %v", e.Err)
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingAnalysisID reports a well-formed message without an analysis id.
type ErrMissingAnalysisID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingAnalysisID) Error() string { return "missing analysis id" }

// ErrProcess wraps a failure from the scoring pipeline itself. The caller
// leaves the message on the queue so it can be redelivered.
type ErrProcess struct {
	AnalysisID string
	RequestID  string
	Err        error
}

func (e ErrProcess) Error() string {
	return fmt.Sprintf("process analysis: %v", e.Err)
}

func (e ErrProcess) Unwrap() error { return e.Err }

// ParseMessage decodes a payload and checks it names an analysis.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	switch {
	case err != nil:
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	case strings.TrimSpace(msg.AnalysisID) == "":
		return msg, meta, ErrMissingAnalysisID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage caches a decoded message so HandleMessage does not
// decode the body a second time.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// Processor runs the scoring pipeline for a single analysis.
type Processor interface {
	ProcessAnalysis(ctx context.Context, analysisID string) error
}

// HandleMessage runs one payload end to end: parse, validate, process.
// Parse failures come back as the typed errors above so the caller can
// decide between dropping and redelivery.
func HandleMessage(ctx context.Context, processor Processor, body string) error {
	if processor == nil {
		return errors.New("no analysis processor configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		decoded, _, err := ParseMessage(body)
		if err != nil {
			return err
		}
		msg = decoded
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return ErrMissingAnalysisID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	ctx = analyses.WithRequestID(ctx, msg.RequestID)
	if err := processor.ProcessAnalysis(ctx, msg.AnalysisID); err != nil {
		return ErrProcess{AnalysisID: msg.AnalysisID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}
