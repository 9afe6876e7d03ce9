// Package i18n は en / hi / ta / bn のメッセージテーブルと言語フォールバックを提供します。
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported は対応言語の一覧で、先頭がフォールバック先です。
var Supported = []language.Tag{
	language.English,
	language.Hindi,
	language.Tamil,
	language.Bengali,
}

var (
	matcher = language.NewMatcher(Supported)
	cat     = mustBuildCatalog()
)

func mustBuildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, table := range messages {
		for key, msg := range table {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s の登録に失敗しました: %v", tag, key, err))
			}
		}
	}
	return b
}

// Localizer は1つの言語に固定されたメッセージ解決器です。
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New は言語指定（"hi", "ta-IN", "bn,en;q=0.8" など）に最も近い対応言語の Localizer を返します。
// 解釈できない指定や未対応の言語は英語になります。
func New(lang string) *Localizer {
	tag := Match(lang)
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Match は言語指定を対応言語のいずれかに解決します。
func Match(lang string) language.Tag {
	desired, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(desired) == 0 {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Language は解決済みの言語タグを返します。
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T はキーに対応するメッセージを返します。未登録のキーはキー文字列がそのまま返ります。
func (l *Localizer) T(key string) string {
	return l.printer.Sprintf(key)
}
