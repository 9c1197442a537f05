package swagger

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/product-catalog/api-contract"
)

const (
	// DocsPath serves the Swagger UI page.
	DocsPath = "/docs"

	// SpecPath serves the raw OpenAPI document rendered by the page.
	SpecPath = "/docs/openapi.yml"

	swaggerUIVersion = "5.29.3"
)

var pageTemplate = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: {{.SpecPath}},
      dom_id: '#swagger-ui',
      deepLinking: true,
      tryItOutEnabled: true,
    });
  };
</script>
</body>
</html>
`))

// Register mounts the Swagger UI page and the OpenAPI document on r.
func Register(r chi.Router) {
	page := renderPage()
	spec := apicontract.GetSpecBytes()

	r.Get(DocsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(page)
	})

	r.Get(SpecPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(spec)
	})
}

func renderPage() []byte {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, struct {
		Title    string
		Version  string
		SpecPath string
	}{
		Title:    "Product Catalog API",
		Version:  swaggerUIVersion,
		SpecPath: SpecPath,
	}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
