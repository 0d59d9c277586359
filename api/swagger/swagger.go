package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Solver API",
        "description": "Constraint-programming engine for Afghan-curriculum school timetabling",
        "version": "1.0.0"
    },
    "basePath": "/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/healthz": {
            "get": {
                "summary": "Liveness/readiness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/solve": {
            "post": {
                "summary": "Solve a timetabling instance",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/solve/{id}": {
            "get": {
                "summary": "Fetch a previously computed proposal",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found or expired"
                    }
                }
            }
        },
        "/solve/history": {
            "get": {
                "summary": "Paginated solve-run audit log",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
