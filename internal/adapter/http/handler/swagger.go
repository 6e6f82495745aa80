package handler

import (
	"net/http"
	"sync"

	"crosschain-donation/pkg/apperror"
	"crosschain-donation/pkg/response"

	"github.com/gin-gonic/gin"
)

var apiDoc struct {
	mu   sync.RWMutex
	yaml []byte
}

// SetSwaggerSpec installs the OpenAPI document served under /swagger. nil
// unloads it.
func SetSwaggerSpec(doc []byte) {
	apiDoc.mu.Lock()
	defer apiDoc.mu.Unlock()
	apiDoc.yaml = append([]byte(nil), doc...)
}

func SwaggerSpec(c *gin.Context) {
	apiDoc.mu.RLock()
	doc := apiDoc.yaml
	apiDoc.mu.RUnlock()

	if doc == nil {
		response.Error(c, apperror.ErrNotFound("API document"))
		return
	}
	c.Data(http.StatusOK, "application/yaml", doc)
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Donation client control API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: '/swagger/spec', dom_id: '#swagger-ui', deepLinking: true });
  </script>
</body>
</html>`

// SwaggerUI renders the interactive docs for the control API.
func SwaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}
