package rod

const (
	applicationFormHTML = `<!DOCTYPE html>
<html>
<head><title>Apply</title></head>
<body>
	<form id="apply" onsubmit="event.preventDefault(); document.getElementById('done').textContent = 'Thank you ' + document.getElementById('company').value;">
		<label for="company">Company</label>
		<input id="company" name="company" required />
		<label for="stage">Stage</label>
		<select id="stage" name="stage">
			<option>Pre-seed</option>
			<option>Seed</option>
			<option>Series A</option>
		</select>
		<textarea name="pitch" placeholder="Pitch"></textarea>
		<button id="submit" type="submit">Submit</button>
	</form>
	<div id="done"></div>
</body>
</html>`

	scrollableHTML = `<!DOCTYPE html>
<html>
<body style="height: 5000px;">
	<h1 id="top">Top of Page</h1>
</body>
</html>`
)
