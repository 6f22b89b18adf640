package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	"github.com/gin-gonic/gin"
)

// GraphQLRequest is a GraphQL request, decoded from the JSON body of a POST
// or the query string of a GET.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

const (
	requestKey   = "graphqlRequest"
	operationKey = "graphqlOperation"
)

// ParseGraphQL decodes the request and classifies the operation it selects.
// GET may only carry queries: a mutation, or a document that cannot be
// classified, is refused before anything executes.
func ParseGraphQL() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GraphQLRequest
		if c.Request.Method == http.MethodGet {
			req.Query = c.Query("query")
			req.OperationName = c.Query("operationName")
			if raw := c.Query("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					AbortGraphQL(c, http.StatusBadRequest, "BAD_REQUEST", "Could not parse variables.")
					return
				}
			}
		} else if err := c.ShouldBindJSON(&req); err != nil {
			AbortGraphQL(c, http.StatusBadRequest, "BAD_REQUEST", "Could not parse request data.")
			return
		}
		if req.Query == "" {
			AbortGraphQL(c, http.StatusBadRequest, "BAD_REQUEST", "Missing query.")
			return
		}

		op, perr := operationOf(req.Query, req.OperationName)
		if c.Request.Method == http.MethodGet {
			switch {
			case perr != nil:
				AbortGraphQL(c, http.StatusBadRequest, "GRAPHQL_PARSE_FAILED", perr.Error())
				return
			case op != ast.Query:
				c.Header("Allow", http.MethodPost)
				AbortGraphQL(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
					"Only queries may be sent with GET. Use POST for mutations.")
				return
			}
		}

		c.Set(requestKey, &req)
		c.Set(operationKey, op)
		c.Next()
	}
}

// operationOf returns the type of the operation the engine would run, or ""
// when the document names no single operation.
func operationOf(query, name string) (ast.Operation, error) {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: query})
	if gqlErr != nil {
		return "", gqlErr
	}
	if op := doc.Operations.ForName(name); op != nil {
		return op.Operation, nil
	}
	return "", nil
}

// GraphQLRequestFrom returns the request decoded by ParseGraphQL.
func GraphQLRequestFrom(c *gin.Context) (*GraphQLRequest, bool) {
	v, ok := c.Get(requestKey)
	if !ok {
		return nil, false
	}
	req, ok := v.(*GraphQLRequest)
	return req, ok
}

// MayWrite reports whether the request can run a mutation. Anything not
// classified as a query counts.
func MayWrite(c *gin.Context) bool {
	op, _ := c.Get(operationKey)
	return op != ast.Query
}

// AbortGraphQL stops the chain with a GraphQL-shaped error body.
func AbortGraphQL(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"errors": []gin.H{{
			"message":    message,
			"extensions": gin.H{"code": code},
		}},
	})
}
