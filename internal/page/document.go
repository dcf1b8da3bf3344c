// Package page 提供伺服器渲染頁面的文件樹，代替瀏覽器中的 DOM。
// 文件樹不支援併發存取，所有操作應在同一個 goroutine 中執行。
package page

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	apperrors "go-seating-client/pkg/app_errors"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	root *html.Node
}

// Predicate 判斷元素是否符合條件
type Predicate func(n *html.Node) bool

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidMarkup, err)
	}
	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) Root() *html.Node {
	return d.root
}

// FindAll 依文件順序回傳所有符合條件的元素
func (d *Document) FindAll(p Predicate) []*html.Node {
	return Descendants(d.root, p)
}

func (d *Document) First(p Predicate) *html.Node {
	return first(d.root, p)
}

func (d *Document) ByID(id string) *html.Node {
	return d.First(AttrEquals("id", id))
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// RenderNode 序列化單一元素，文字內容與屬性值由 renderer 跳脫
func RenderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

func Tag(name string) Predicate {
	return func(n *html.Node) bool {
		return IsElement(n) && n.Data == name
	}
}

func WithClass(class string) Predicate {
	return func(n *html.Node) bool {
		return HasClass(n, class)
	}
}

func AttrEquals(key, value string) Predicate {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return ok && v == value
	}
}

func And(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Descendants 回傳 n 底下（不含 n 本身）符合條件的元素
func Descendants(n *html.Node, p Predicate) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if IsElement(c) && p(c) {
				found = append(found, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return found
}

func first(n *html.Node, p Predicate) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) && p(c) {
			return c
		}
		if found := first(c, p); found != nil {
			return found
		}
	}
	return nil
}

// FirstDescendant 回傳 n 底下第一個符合條件的元素，找不到時回傳 nil
func FirstDescendant(n *html.Node, p Predicate) *html.Node {
	if n == nil {
		return nil
	}
	return first(n, p)
}

func Attr(n *html.Node, key string) (string, bool) {
	if !IsElement(n) {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Data 讀取 data-* 屬性，name 不含 "data-" 前綴
func Data(n *html.Node, name string) (string, bool) {
	return Attr(n, "data-"+name)
}

func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

func SetData(n *html.Node, name, value string) {
	SetAttr(n, "data-"+name, value)
}

func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(Classes(n), class), " "))
}

func RemoveClass(n *html.Node, class string) {
	if !HasClass(n, class) {
		return
	}
	var kept []string
	for _, c := range Classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass 切換 class，回傳切換後是否存在
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}

func NewElement(tag string, classes ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(classes) > 0 {
		SetAttr(n, "class", strings.Join(classes, " "))
	}
	return n
}

// NewText 建立文字節點；輸出時會被跳脫，不會被當成 markup
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Remove 將 n 從父節點移除，n 沒有父節點時不做任何事
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// TextContent 回傳 n 底下所有文字節點串接後的內容
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}
