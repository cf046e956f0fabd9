// Package model はドメインモデルとバックエンドAPIのDTOを定義する。
package model

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated は401/403レスポンスを表すセンチネルエラー。
// 「ログアウト状態」という正常な結果であり、ユーザー向けエラーとしては扱わない。
var ErrUnauthenticated = errors.New("認証されていません")

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code       string // エラーコード
	Message    string // エラーメッセージ
	Category   string // カテゴリ: auth, validation, network, system
	Action     string // ユーザー向け対処方法
	StatusCode int    // HTTPステータスコード（該当する場合）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeRequestFailed   = "REQUEST_FAILED"
	ErrCodeInvalidResponse = "INVALID_RESPONSE"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeImageBlocked    = "IMAGE_BLOCKED"
)

// NewRequestFailedError はバックエンドがエラーステータスを返した場合のエラーを生成する。
func NewRequestFailedError(path string, statusCode int) *APIError {
	return &APIError{
		Code:       ErrCodeRequestFailed,
		Message:    fmt.Sprintf("バックエンドがステータス %d を返しました: %s", statusCode, path),
		Category:   "network",
		Action:     "しばらく待ってから再度お試しください。",
		StatusCode: statusCode,
	}
}

// NewInvalidResponseError はレスポンスJSONが解釈できない場合のエラーを生成する。
func NewInvalidResponseError(path string, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidResponse,
		Message:  fmt.Sprintf("レスポンスの解釈に失敗しました: %s: %s", path, reason),
		Category: "system",
		Action:   "バックエンドのバージョンが対応しているか確認してください。",
	}
}

// NewInvalidRequestError はリクエストの組み立てに失敗した場合のエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("無効なリクエストです: %s", reason),
		Category: "validation",
		Action:   "リクエストパラメータを確認してください。",
	}
}

// NewImageBlockedError はアイテム画像URLがセキュリティポリシーでブロックされた場合の
// エラーを生成する。
func NewImageBlockedError() *APIError {
	return &APIError{
		Code:     ErrCodeImageBlocked,
		Message:  "セキュリティポリシーにより、指定された画像URLへのアクセスがブロックされました。",
		Category: "validation",
		Action:   "公開されているWebサイトの画像URLを指定してください。",
	}
}
