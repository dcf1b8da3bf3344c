package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<html><body>
<div id="ticket-selection">
  <div class="ticket" data-id="1" data-code="A1">A1</div>
  <div class="ticket extra" data-id="2" data-code="A2" data-seat-label="B4">A2</div>
</div>
<button id="release-seat-trigger">release</button>
</body></html>`

func TestParseAndQuery(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)

	selection := doc.ByID("ticket-selection")
	require.NotNil(t, selection)

	tickets := Descendants(selection, WithClass("ticket"))
	require.Len(t, tickets, 2)

	id, ok := Data(tickets[0], "id")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	_, ok = Data(tickets[0], "seat-label")
	assert.False(t, ok)

	label, ok := Data(tickets[1], "seat-label")
	assert.True(t, ok)
	assert.Equal(t, "B4", label)

	found := doc.First(And(WithClass("ticket"), AttrEquals("data-code", "A2")))
	assert.Same(t, tickets[1], found)

	assert.Nil(t, doc.ByID("missing"))
}

func TestClassHelpers(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	ticket := doc.First(AttrEquals("data-id", "2"))
	require.NotNil(t, ticket)

	t.Run("AddClass is idempotent", func(t *testing.T) {
		AddClass(ticket, "ticket--current")
		AddClass(ticket, "ticket--current")
		assert.Equal(t, []string{"ticket", "extra", "ticket--current"}, Classes(ticket))
	})

	t.Run("RemoveClass keeps the others", func(t *testing.T) {
		RemoveClass(ticket, "extra")
		assert.Equal(t, []string{"ticket", "ticket--current"}, Classes(ticket))
		RemoveClass(ticket, "not-there")
		assert.Equal(t, []string{"ticket", "ticket--current"}, Classes(ticket))
	})

	t.Run("ToggleClass", func(t *testing.T) {
		assert.False(t, ToggleClass(ticket, "ticket--current"))
		assert.True(t, ToggleClass(ticket, "ticket--current"))
	})
}

func TestAttrHelpers(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	button := doc.ByID("release-seat-trigger")
	require.NotNil(t, button)

	SetAttr(button, "disabled", "disabled")
	_, ok := Attr(button, "disabled")
	assert.True(t, ok)

	RemoveAttr(button, "disabled")
	_, ok = Attr(button, "disabled")
	assert.False(t, ok)

	SetData(button, "selected-id", "7")
	v, _ := Data(button, "selected-id")
	assert.Equal(t, "7", v)
}

func TestRenderEscapesText(t *testing.T) {
	div := NewElement("div", "seat-occupier-name")
	strong := NewElement("strong")
	strong.AppendChild(NewText(`<script>alert("x")</script>`))
	div.AppendChild(strong)

	out := RenderNode(div)
	assert.Equal(t, `<div class="seat-occupier-name"><strong>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</strong></div>`, out)
	assert.Equal(t, `<script>alert("x")</script>`, TextContent(div))
}

func TestRemove(t *testing.T) {
	doc, err := ParseString(`<div class="seat-with-tooltip" data-label="C3"><div class="seat"></div></div>`)
	require.NoError(t, err)

	seat := doc.First(WithClass("seat"))
	require.NotNil(t, seat)
	container := doc.First(WithClass("seat-with-tooltip"))
	require.NotNil(t, container)
	assert.Same(t, container, seat.Parent)

	Remove(seat)
	assert.Nil(t, doc.First(WithClass("seat")))

	// 沒有父節點時不應 panic
	Remove(seat)
	Remove(nil)
}
