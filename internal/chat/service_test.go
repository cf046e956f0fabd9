package chat

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hitoshi/yardclient/internal/model"
	"github.com/hitoshi/yardclient/internal/security"
)

type fakeHTTPClient struct {
	getPaths  []string
	postPaths []string
	postBody  any
	getFunc   func(path string, out any) error
	postFunc  func(path string, in, out any) error
}

func (f *fakeHTTPClient) GetJSON(ctx context.Context, path string, out any) error {
	f.getPaths = append(f.getPaths, path)
	if f.getFunc != nil {
		return f.getFunc(path, out)
	}
	return nil
}

func (f *fakeHTTPClient) PostJSON(ctx context.Context, path string, in, out any) error {
	f.postPaths = append(f.postPaths, path)
	f.postBody = in
	if f.postFunc != nil {
		return f.postFunc(path, in, out)
	}
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func newTestService(fake *fakeHTTPClient) *Service {
	return NewService(fake, security.NewMessageSanitizer(), newTestLogger())
}

func TestService_Chats_SanitizesMessages(t *testing.T) {
	fake := &fakeHTTPClient{
		getFunc: func(path string, out any) error {
			chats := out.(*[]model.Chat)
			*chats = []model.Chat{
				{
					Messages: []model.Message{
						{MessageID: 1, Message: `こんにちは<script>alert('xss')</script>`},
					},
				},
			}
			return nil
		},
	}
	s := newTestService(fake)

	chats, err := s.Chats(context.Background())
	if err != nil {
		t.Fatalf("Chats がエラーを返した: %v", err)
	}
	if fake.getPaths[0] != "/user/chat" {
		t.Errorf("GETパス = %s, want /user/chat", fake.getPaths[0])
	}

	got := chats[0].Messages[0].Message
	if strings.Contains(got, "<script>") {
		t.Errorf("メッセージ本文はサニタイズされるべき: %s", got)
	}
	if !strings.Contains(got, "こんにちは") {
		t.Errorf("テキスト本文は保持されるべき: %s", got)
	}
}

func TestService_Chat_SanitizesMessages(t *testing.T) {
	fake := &fakeHTTPClient{
		postFunc: func(path string, in, out any) error {
			c := out.(*model.Chat)
			c.Messages = []model.Message{
				{MessageID: 1, Message: `<img src=x onerror=alert(1)>写真です`},
			}
			return nil
		},
	}
	s := newTestService(fake)

	c, err := s.Chat(context.Background(), model.ChatRequest{ItemID: 1, UserID: 2})
	if err != nil {
		t.Fatalf("Chat がエラーを返した: %v", err)
	}
	if fake.postPaths[0] != "/user/chat/get" {
		t.Errorf("POSTパス = %s, want /user/chat/get", fake.postPaths[0])
	}

	got := c.Messages[0].Message
	if strings.Contains(got, "<img") || strings.Contains(got, "onerror") {
		t.Errorf("imgタグとイベント属性が除去されるべき: %s", got)
	}
}

func TestService_Chat_SendsItemAndUserID(t *testing.T) {
	fake := &fakeHTTPClient{}
	s := newTestService(fake)

	_, err := s.Chat(context.Background(), model.ChatRequest{ItemID: 10, UserID: 20})
	if err != nil {
		t.Fatalf("Chat がエラーを返した: %v", err)
	}

	sent := fake.postBody.(model.ChatRequest)
	if sent.ItemID != 10 || sent.UserID != 20 {
		t.Errorf("送信されたボディ = %+v, want itemID=10 userID=20", sent)
	}
}

func TestService_SendMessage(t *testing.T) {
	fake := &fakeHTTPClient{}
	s := newTestService(fake)

	err := s.SendMessage(context.Background(), model.SendMessageRequest{ItemID: 1, UserID: 2, Message: "よろしくお願いします"})
	if err != nil {
		t.Fatalf("SendMessage がエラーを返した: %v", err)
	}
	if fake.postPaths[0] != "/user/chat/message" {
		t.Errorf("POSTパス = %s, want /user/chat/message", fake.postPaths[0])
	}
}

func TestService_Chats_WrapsError(t *testing.T) {
	cause := errors.New("boom")
	fake := &fakeHTTPClient{
		getFunc: func(path string, out any) error { return cause },
	}
	s := newTestService(fake)

	_, err := s.Chats(context.Background())
	if !errors.Is(err, cause) {
		t.Errorf("元のエラーがラップされるべき: %v", err)
	}
}
