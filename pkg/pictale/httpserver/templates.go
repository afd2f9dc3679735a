package httpserver

import "html/template"

const pageTemplateName = "page"

var pageTemplate = template.Must(template.New(pageTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Image-to-Story Generator</title>
<style>
body { font-family: sans-serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; }
img.preview { max-width: 100%; display: block; margin: 1rem 0; }
.info { background: #e8f1fb; padding: .75rem; }
.error { background: #fde8e8; padding: .75rem; }
</style>
</head>
<body>
<h1>Image to Story</h1>
<p>Upload an image and get a short story based on it!</p>
<form method="post" action="/story" enctype="multipart/form-data">
<input type="file" name="image" id="image" accept=".jpg,.jpeg,.png">
<button type="submit">Generate</button>
</form>
<img class="preview" id="preview" alt="Uploaded Image"{{if .Preview}} src="{{.Preview}}"{{else}} hidden{{end}}>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Idle}}<p class="info">{{.Idle}}</p>{{end}}
{{if .Caption}}<h2>Generated Caption</h2>
<p id="caption">{{.Caption}}</p>{{end}}
{{if .Story}}<h2>Generated Story</h2>
<p id="story">{{.Story}}</p>{{end}}
<script>
document.getElementById("image").addEventListener("change", function (event) {
  var file = event.target.files[0];
  var preview = document.getElementById("preview");
  if (!file) { return; }
  preview.src = URL.createObjectURL(file);
  preview.hidden = false;
});
</script>
</body>
</html>
`))

// pageData what the page shows; empty fields are omitted.
type pageData struct {
	Idle    string
	Error   string
	Preview template.URL
	Caption string
	Story   string
}
