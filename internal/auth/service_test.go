package auth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hitoshi/yardclient/internal/model"
)

type fakeHTTPClient struct {
	postPaths []string
	postBody  any
	postFunc  func(path string, in, out any) error
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

func TestService_Signup_ReturnsBackendBool(t *testing.T) {
	fake := &fakeHTTPClient{
		postFunc: func(path string, in, out any) error {
			*(out.(*bool)) = true
			return nil
		},
	}
	s := NewService(fake, newTestLogger())

	ok, err := s.Signup(context.Background(), model.UserRegistration{Email: "taro@example.com"})
	if err != nil {
		t.Fatalf("Signup がエラーを返した: %v", err)
	}
	if !ok {
		t.Error("バックエンドがtrueを返した場合はtrueを返すべき")
	}
	if fake.postPaths[0] != "/token/signup" {
		t.Errorf("POSTパス = %s, want /token/signup", fake.postPaths[0])
	}
}

func TestService_Signup_FalseBody(t *testing.T) {
	fake := &fakeHTTPClient{
		postFunc: func(path string, in, out any) error {
			*(out.(*bool)) = false
			return nil
		},
	}
	s := NewService(fake, newTestLogger())

	ok, err := s.Signup(context.Background(), model.UserRegistration{})
	if err != nil {
		t.Fatalf("Signup がエラーを返した: %v", err)
	}
	if ok {
		t.Error("バックエンドがfalseを返した場合はfalseを返すべき")
	}
}

func TestService_Signin_SendsCredentials(t *testing.T) {
	fake := &fakeHTTPClient{
		postFunc: func(path string, in, out any) error {
			*(out.(*bool)) = true
			return nil
		},
	}
	s := NewService(fake, newTestLogger())

	ok, err := s.Signin(context.Background(), model.UserLogin{Email: "taro@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Signin がエラーを返した: %v", err)
	}
	if !ok {
		t.Error("ログイン成功時はtrueを返すべき")
	}
	if fake.postPaths[0] != "/token/signin" {
		t.Errorf("POSTパス = %s, want /token/signin", fake.postPaths[0])
	}

	sent := fake.postBody.(model.UserLogin)
	if sent.Email != "taro@example.com" || sent.Password != "secret" {
		t.Errorf("送信された認証情報 = %+v", sent)
	}
}

func TestService_Signin_WrapsError(t *testing.T) {
	cause := errors.New("network down")
	fake := &fakeHTTPClient{
		postFunc: func(path string, in, out any) error { return cause },
	}
	s := NewService(fake, newTestLogger())

	ok, err := s.Signin(context.Background(), model.UserLogin{})
	if ok {
		t.Error("エラー時はfalseを返すべき")
	}
	if !errors.Is(err, cause) {
		t.Errorf("元のエラーがラップされるべき: %v", err)
	}
}

func TestService_Signout(t *testing.T) {
	fake := &fakeHTTPClient{}
	s := NewService(fake, newTestLogger())

	if err := s.Signout(context.Background()); err != nil {
		t.Fatalf("Signout がエラーを返した: %v", err)
	}
	if fake.postPaths[0] != "/token/logout" {
		t.Errorf("POSTパス = %s, want /token/logout", fake.postPaths[0])
	}
}

func TestService_Signout_ReturnsError(t *testing.T) {
	fake := &fakeHTTPClient{
		postFunc: func(path string, in, out any) error { return errors.New("boom") },
	}
	s := NewService(fake, newTestLogger())

	if err := s.Signout(context.Background()); err == nil {
		t.Error("失敗時はエラーを返すべき（ローカル状態の破棄は呼び出し元の責務）")
	}
}
