// Package model はドメインモデルとバックエンドAPIのDTOを定義する。
package model

// User はサービス利用ユーザーを表す。
// セッションスコープでは「現在のユーザー」を最大1人保持する。
// チャットや入札の相手方は名前・メールのみの軽量プロジェクションとして扱う。
type User struct {
	UserID      int64   `json:"userID"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	CountryCode int     `json:"countryCode"`
	PhoneNumber int     `json:"phoneNumber"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	PostalCode  string  `json:"postalCode,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Role        string  `json:"role"`
}

// UserLogin はログインリクエスト。
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRegistration はユーザー登録リクエスト。
type UserRegistration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	CountryCode int    `json:"countryCode"`
	PhoneNumber int    `json:"phoneNumber"`
}
