// Package security はクライアントのセキュリティ機能を提供する。
//
// ContentSanitizer はバックエンドから受け取ったユーザー生成コンテンツ
// （チャットメッセージ、アイテム説明文）をサニタイズし、
// XSS攻撃などのセキュリティリスクから表示側を保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグと属性のみを通過させる。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer はHTMLコンテンツのサニタイズ機能のインターフェース。
// ストアへ書き込む前のメッセージ本文・アイテム説明文に適用される。
type ContentSanitizer interface {
	// Sanitize はHTMLコンテンツをサニタイズして安全な文字列を返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// messageSanitizer はチャットメッセージ用のサニタイザ。
// メッセージはプレーンテキストとして扱い、全タグを除去する。
type messageSanitizer struct {
	policy *bluemonday.Policy
}

// NewMessageSanitizer はチャットメッセージ用サニタイザを生成する。
// StrictPolicyにより全HTMLタグとon*イベント属性が除去される。
func NewMessageSanitizer() *messageSanitizer {
	return &messageSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize はメッセージ本文から全HTMLタグを除去する。
func (s *messageSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}

// descriptionSanitizer はアイテム説明文用のサニタイザ。
// 最小限の整形タグのみを許可する。
type descriptionSanitizer struct {
	policy *bluemonday.Policy
}

// NewDescriptionSanitizer はアイテム説明文用サニタイザを生成する。
// ポリシーの内容:
//   - 許可タグ: p, br, ul, ol, li, strong, em
//   - aタグ: href属性のみ許可。target="_blank" と rel="noopener noreferrer" を強制付与
//   - script, iframe, style および全てのon*イベント属性は許可リスト外のため除去される
func NewDescriptionSanitizer() *descriptionSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "ul", "ol", "li", "strong", "em")

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AllowURLSchemes("http", "https")
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &descriptionSanitizer{policy: p}
}

// Sanitize はアイテム説明文をポリシーに従ってサニタイズする。
func (s *descriptionSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
