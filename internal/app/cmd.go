package app

// Command はCLIのサブコマンドを表す。
type Command string

const (
	// CommandSearch はアイテム検索を実行することを示す。
	CommandSearch Command = "search"
	// CommandCategories はカテゴリ一覧を取得することを示す。
	CommandCategories Command = "categories"
	// CommandItem はアイテム詳細を取得することを示す。
	CommandItem Command = "item"
	// CommandRecommended はおすすめアイテムを取得することを示す。
	CommandRecommended Command = "recommended"
	// CommandWhoami は認証状態と現在のユーザーを表示することを示す。
	CommandWhoami Command = "whoami"
	// CommandVersion はバージョンを表示することを示す。
	CommandVersion Command = "version"
)

// ParseCommand はコマンドライン引数からサブコマンドと残りの引数を解析する。
// 引数が空の場合はCommandSearchを返す。先頭がサポート外の語の場合も
// CommandSearchを返し、その語を検索ワードとして残りの引数に含める。
func ParseCommand(args []string) (Command, []string) {
	if len(args) == 0 {
		return CommandSearch, nil
	}

	switch args[0] {
	case "search":
		return CommandSearch, args[1:]
	case "categories":
		return CommandCategories, args[1:]
	case "item":
		return CommandItem, args[1:]
	case "recommended":
		return CommandRecommended, args[1:]
	case "whoami":
		return CommandWhoami, args[1:]
	case "version":
		return CommandVersion, args[1:]
	default:
		// サブコマンド省略時は先頭の語を検索ワードとして扱う
		return CommandSearch, args
	}
}
