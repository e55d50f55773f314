package htmlclean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_RemovesScriptStyleAndComments(t *testing.T) {
	out := Clean(`
<body>
	<!-- tracking -->
	<div id="main">Hello</div>
	<script>alert("hi")</script>
	<style>.x {}</style>
</body>`, nil)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<style")
	assert.NotContains(t, out, "tracking")
	assert.Contains(t, out, `id="main"`)
}

func TestClean_FiltersAttributes(t *testing.T) {
	out := Clean(`
<body>
	<input name="email" aria-label="Work email" aria-hidden="false" data-x="1" data-testid="email" onclick="x()" style="color:red" required>
</body>`, &DefaultConfig)

	assert.Contains(t, out, `name="email"`)
	assert.Contains(t, out, `aria-label="Work email"`)
	assert.Contains(t, out, `data-testid="email"`)
	assert.Contains(t, out, `required`)
	assert.NotContains(t, out, "aria-hidden")
	assert.NotContains(t, out, "data-x")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "style=")
}

func TestClean_RemovesHead(t *testing.T) {
	out := Clean(`<html><head><meta charset="utf-8"><link rel="stylesheet" href="x.css"></head><body><p>Hi</p></body></html>`, nil)

	assert.NotContains(t, out, "<meta")
	assert.NotContains(t, out, "<link")
	assert.Contains(t, out, "<p>Hi</p>")
}

func TestClean_Truncation(t *testing.T) {
	var big strings.Builder
	big.WriteString("<body>")
	for i := 0; i < 10000; i++ {
		big.WriteString("<div>test</div>")
	}
	big.WriteString("</body>")

	out := Clean(big.String(), nil)

	assert.LessOrEqual(t, len(out), DefaultConfig.MaxOutputSize+len(truncationNotice))
	assert.True(t, strings.HasSuffix(out, truncationNotice))
}

func TestText(t *testing.T) {
	out := Text(`<html><head><title>Apply</title></head><body>
		<h1>Apply to  Acme</h1>
		<script>var x = 1;</script>
		<p>Thanks for
		   your interest.</p>
	</body></html>`, 0)

	assert.Equal(t, "Apply to Acme\nThanks for your interest.", out)
}

func TestFormFields(t *testing.T) {
	fields, err := FormFields(`<body>
	<form>
		<label for="company">Company name</label>
		<input id="company" name="company" required>
		<input type="hidden" name="csrf" value="x">
		<label>Email <input type="email" name="email" placeholder="you@startup.com"></label>
		<select name="stage" aria-required="true">
			<option>Pre-seed</option>
			<optgroup label="Later"><option>Series A</option></optgroup>
		</select>
		<div><textarea placeholder="Tell us more"></textarea></div>
		<div role="textbox" aria-label="Pitch"></div>
		<button type="submit">Send</button>
		<input type="submit" value="Send">
	</form>
</body>`)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, "field-000", fields[0].ID)
	assert.Equal(t, "text", fields[0].Type)
	assert.Equal(t, "Company name", fields[0].Label)
	assert.True(t, fields[0].Required)
	assert.Equal(t, `[id="company"]`, fields[0].Selector)

	assert.Equal(t, "email", fields[1].Type)
	assert.Equal(t, "Email", fields[1].Label)
	assert.Equal(t, `input[name="email"]`, fields[1].Selector)

	assert.Equal(t, "select", fields[2].Type)
	assert.True(t, fields[2].Required)
	assert.Equal(t, []string{"Pre-seed", "Series A"}, fields[2].Options)

	assert.Equal(t, "textarea", fields[3].Type)
	assert.Equal(t, "Tell us more", fields[3].Label)
	assert.Equal(t, "html > body:nth-of-type(1) > form:nth-of-type(1) > div:nth-of-type(1) > textarea:nth-of-type(1)", fields[3].Selector)

	assert.Equal(t, "textbox", fields[4].Type)
	assert.Equal(t, "Pitch", fields[4].Label)
}
