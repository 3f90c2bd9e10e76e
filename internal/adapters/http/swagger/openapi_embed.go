package swagger

import _ "embed"

// OpenAPI contains the embedded OpenAPI description of the backend API.
//
//go:embed openapi.yaml
var OpenAPI []byte
