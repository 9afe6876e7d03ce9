package styles

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// ErrUnknownStyle はカタログに存在しない様式を選択しようとした場合のエラーです。
var ErrUnknownStyle = errors.New("unknown style")

// Entry は表示用の様式エントリです。
type Entry struct {
	domain.Style
	Active bool `json:"active"`
}

// SelectFunc は選択が確定したときに様式 ID を受け取ります。
type SelectFunc func(styleID string)

// Selector は様式カタログと現在の選択を保持します。
type Selector struct {
	mu       sync.RWMutex
	catalog  domain.StyleCatalog
	selected string
	onSelect SelectFunc
}

// NewSelector は初期選択なしの Selector を作成します。
func NewSelector(catalog domain.StyleCatalog, onSelect SelectFunc) *Selector {
	return &Selector{
		catalog:  catalog,
		onSelect: onSelect,
	}
}

// Entries はカタログを表示順で返し、選択中のものだけ Active を立てます。
func (s *Selector) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.catalog))
	for _, style := range s.catalog {
		entries = append(entries, Entry{
			Style:  style,
			Active: s.selected != "" && style.ID == s.selected,
		})
	}
	return entries
}

// Select は様式を選択し、コールバックへ通知します。
// 大文字小文字の違いはカタログ上の ID に正規化されます。
func (s *Selector) Select(id string) error {
	s.mu.Lock()
	style := s.catalog.Find(id)
	if style == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: '%s'", ErrUnknownStyle, id)
	}
	s.selected = style.ID
	fn := s.onSelect
	s.mu.Unlock()

	if fn != nil {
		fn(style.ID)
	}
	return nil
}

// Selected は選択中の様式 ID を返します。未選択なら空文字です。
func (s *Selector) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Catalog は保持しているカタログのコピーを返します。
func (s *Selector) Catalog() domain.StyleCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(domain.StyleCatalog(nil), s.catalog...)
}
