package dom

import (
	"strings"
	"testing"
)

func TestClassHelpers(t *testing.T) {
	n := NewElement("div", "class", "card  featured")
	if !HasClass(n, "card") || !HasClass(n, "featured") {
		t.Fatalf("classes = %v", Classes(n))
	}
	AddClass(n, "card")
	AddClass(n, "flipped")
	if got := AttrOr(n, "class", ""); got != "card featured flipped" {
		t.Errorf("after AddClass class = %q", got)
	}
	RemoveClass(n, "featured")
	ToggleClass(n, "flipped", false)
	if got := AttrOr(n, "class", ""); got != "card" {
		t.Errorf("after removal class = %q", got)
	}
}

func TestAttrHelpers(t *testing.T) {
	n := NewElement("a", "href", "/x")
	SetAttr(n, "href", "/y")
	SetAttr(n, "target", "_blank")
	if v, _ := Attr(n, "href"); v != "/y" {
		t.Errorf("href = %q", v)
	}
	RemoveAttr(n, "target")
	if _, ok := Attr(n, "target"); ok {
		t.Error("target still present")
	}
	if AttrOr(n, "rel", "none") != "none" {
		t.Error("AttrOr default not used")
	}
}

func TestTraversal(t *testing.T) {
	doc, err := Parse(`<html><body><ul id="list"><li class="item"><span>a</span></li><li class="item">b</li></ul><p>out</p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	list := Find(doc, ByID("list"))
	items := FindAll(doc, ByClass("item"))
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	span := Find(items[0], ByTag("span"))
	if Closest(span, ByClass("item")) != items[0] {
		t.Error("Closest did not find the enclosing item")
	}
	if !Contains(list, span) || Contains(list, Find(doc, ByTag("p"))) {
		t.Error("Contains gave the wrong answer")
	}
	if got := Text(list); got != "ab" {
		t.Errorf("Text = %q", got)
	}
}

func TestFragmentEditing(t *testing.T) {
	parent := NewElement("div")
	nodes, err := ParseFragment(`<b>x</b><i>y</i>`, nil)
	if err != nil {
		t.Fatal(err)
	}
	AppendAll(parent, nodes)
	if got := InnerHTML(parent); got != "<b>x</b><i>y</i>" {
		t.Errorf("InnerHTML = %q", got)
	}

	other := NewElement("section")
	AppendAll(other, Children(parent))
	if parent.FirstChild != nil || len(Children(other)) != 2 {
		t.Error("AppendAll did not move the nodes")
	}

	SetText(other, "<safe> & sound")
	if got := Render(other); !strings.Contains(got, "&lt;safe&gt; &amp; sound") {
		t.Errorf("Render = %q", got)
	}
}
