package graphql

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/handler"
)

// Handler builds the /graphql endpoint as a fiber handler. GraphiQL is
// served on GET for interactive exploration.
func Handler(svcs Services) (fiber.Handler, error) {
	schema, err := NewSchema(svcs)
	if err != nil {
		return nil, err
	}
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	return adaptor.HTTPHandler(h), nil
}
