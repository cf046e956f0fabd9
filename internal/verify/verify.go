// Package verify はフォーム入力文字列の検証述語を提供する。
// すべて純粋関数で、検証前に前後の空白を取り除く。
package verify

import (
	"regexp"
	"strings"
)

var (
	lettersPattern = regexp.MustCompile(`^\p{L}+$`)
	numbersPattern = regexp.MustCompile(`^[0-9]+$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// LettersOnly は文字列がUnicode文字のみで構成されているかを検証する。
func LettersOnly(s string) bool {
	return lettersPattern.MatchString(strings.TrimSpace(s))
}

// NumbersOnly は文字列が数字のみで構成されているかを検証する。
func NumbersOnly(s string) bool {
	return numbersPattern.MatchString(strings.TrimSpace(s))
}

// Email は文字列がメールアドレスの形式かを検証する。
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// NotEmpty は文字列が空白のみでないことを検証する。
func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
