package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resume-screener/internal/queue"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeProcessor struct {
	err error
}

func (f fakeProcessor) ProcessAnalysis(ctx context.Context, analysisID string) error {
	return f.err
}

func sqsMessage(t *testing.T, id, receipt, analysisID string) sqstypes.Message {
	t.Helper()
	body, err := queue.EncodeMessage(queue.Message{AnalysisID: analysisID, RequestID: "req-" + analysisID})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}
	return sqstypes.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String(receipt),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}
	msg := sqsMessage(t, "m1", "r1", "analysis-1")

	handleMessage(context.Background(), client, "queue", fakeProcessor{}, msg)

	if len(client.deleted) != 1 || client.deleted[0] != "r1" {
		t.Fatalf("expected r1 deleted, got %v", client.deleted)
	}
}

func TestWorkerKeepsMessageOnProcessingFailure(t *testing.T) {
	client := &fakeSQS{}
	msg := sqsMessage(t, "m2", "r2", "analysis-2")

	handleMessage(context.Background(), client, "queue", fakeProcessor{err: errors.New("boom")}, msg)

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %v", client.deleted)
	}
}

func TestWorkerDeletesPoisonMessages(t *testing.T) {
	poison := []sqstypes.Message{
		{MessageId: aws.String("m3"), ReceiptHandle: aws.String("r3"), Body: aws.String("{bad-json")},
		{MessageId: aws.String("m4"), ReceiptHandle: aws.String("r4"), Body: aws.String("   ")},
		{MessageId: aws.String("m5"), ReceiptHandle: aws.String("r5"), Body: aws.String(`{"requestId":"req-5"}`)},
	}

	for _, msg := range poison {
		client := &fakeSQS{}
		handleMessage(context.Background(), client, "queue", fakeProcessor{}, msg)
		if len(client.deleted) != 1 {
			t.Fatalf("message %s: expected delete, got %v", aws.ToString(msg.MessageId), client.deleted)
		}
	}
}
