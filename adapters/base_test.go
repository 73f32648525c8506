package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><head>
<meta property="og:title" content="Widget from OG">
<meta name="description" content="A fine widget">
<script src="/app.js"></script>
<script>window.__DATA__ = {"id": 1};</script>
</head><body>
<h1 class="product-title">  Widget
   Pro </h1>
<span class="empty"></span>
<span class="price" data-price="19.99">$19.99</span>
<table class="specs">
  <tr><th>Weight</th><td>1.2 kg</td></tr>
  <tr><td>Color :</td><td>Blue</td></tr>
  <tr><td colspan="2">ignored</td></tr>
</table>
<dl class="facts"><dt>Material</dt><dd>Steel</dd><dt>Empty</dt><dd></dd></dl>
<ul class="bullets"><li>Voltage: 220 V</li><li>No separator here</li></ul>
</body></html>`

func TestFirstText(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	require.NoError(t, err)

	m, ok := FirstText(doc.Selection, []string{".missing", ".empty", "h1.product-title"})
	require.True(t, ok)
	assert.Equal(t, "h1.product-title", m.Selector)
	assert.Equal(t, "Widget Pro", m.Value)

	_, ok = FirstText(doc.Selection, []string{".missing", ".empty"})
	assert.False(t, ok)
}

func TestFirstAttr(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	require.NoError(t, err)

	m, ok := FirstAttr(doc.Selection, []string{".price"}, "content", "data-price")
	require.True(t, ok)
	assert.Equal(t, "19.99", m.Value)

	_, ok = FirstAttr(doc.Selection, []string{"h1"}, "content")
	assert.False(t, ok)
}

func TestMeta(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	require.NoError(t, err)

	v, ok := Meta(doc, "og:title")
	require.True(t, ok)
	assert.Equal(t, "Widget from OG", v)

	v, ok = Meta(doc, "twitter:description", "description")
	require.True(t, ok)
	assert.Equal(t, "A fine widget", v)

	_, ok = Meta(doc, "og:image")
	assert.False(t, ok)
}

func TestLabelValues(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Weight": "1.2 kg", "Color": "Blue"}, LabelValues(doc.Find("table.specs")))
	assert.Equal(t, map[string]string{"Material": "Steel"}, LabelValues(doc.Find("dl.facts")))
	assert.Equal(t, map[string]string{"Voltage": "220 V"}, LabelValues(doc.Find("ul.bullets")))
}

func TestScriptTexts(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	require.NoError(t, err)

	scripts := ScriptTexts(doc)
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], "__DATA__")
}
