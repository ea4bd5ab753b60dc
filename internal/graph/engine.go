// Package graph implements the resolver engine: an explicit mapping from
// operation name to a typed handler, executed over gqlparser's validated
// AST, with results projected through the request's selection sets.
package graph

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hmans/rolodex/internal/contact"
)

// handlerFunc is the fixed contract every operation handler satisfies:
// coerced arguments in, a domain value or a typed failure out.
type handlerFunc func(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error)

// Engine dispatches query and mutation fields to their handlers.
type Engine struct {
	queries   map[string]handlerFunc
	mutations map[string]handlerFunc
}

// NewEngine wires the resolver's handlers into the dispatch tables.
func NewEngine(r *Resolver) *Engine {
	return &Engine{
		queries: map[string]handlerFunc{
			"personCount": r.PersonCount,
			"allPersons":  r.AllPersons,
			"findPerson":  r.FindPerson,
			"me":          r.Me,
		},
		mutations: map[string]handlerFunc{
			"addPerson":   r.AddPerson,
			"editNumber":  r.EditNumber,
			"createUser":  r.CreateUser,
			"login":       r.Login,
			"addAsFriend": r.AddAsFriend,
		},
	}
}

// Response is the GraphQL response envelope.
type Response struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors gqlerror.List          `json:"errors,omitempty"`
}

// Execute parses, validates and runs one request against the schema.
// Top-level fields run serially in document order. A failing field
// contributes null data plus a structured error; it never aborts its
// siblings.
func (e *Engine) Execute(ctx context.Context, query string, variables map[string]interface{}, operationName string) *Response {
	doc, errs := gqlparser.LoadQuery(schema, query)
	if len(errs) > 0 {
		return &Response{Errors: errs}
	}

	op := doc.Operations.ForName(operationName)
	if op == nil {
		return &Response{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", operationName)}}
	}

	var handlers map[string]handlerFunc
	var rootType string
	switch op.Operation {
	case ast.Query:
		handlers, rootType = e.queries, "Query"
	case ast.Mutation:
		handlers, rootType = e.mutations, "Mutation"
	default:
		return &Response{Errors: gqlerror.List{gqlerror.Errorf("unsupported operation %q", op.Operation)}}
	}

	vars, verr := coerceVariables(op, variables)
	if verr != nil {
		return &Response{Errors: gqlerror.List{verr}}
	}

	ex := &execution{doc: doc, vars: vars}
	resp := &Response{Data: map[string]interface{}{}}

	for _, field := range ex.collectFields(op.SelectionSet, rootType) {
		alias := field.Alias
		if alias == "" {
			alias = field.Name
		}

		if field.Name == "__typename" {
			resp.Data[alias] = rootType
			continue
		}

		handler, ok := handlers[field.Name]
		if !ok {
			resp.Data[alias] = nil
			resp.Errors = append(resp.Errors, fieldError(alias, gqlerror.Errorf("no handler for field %q", field.Name)))
			continue
		}

		args, aerr := ex.argumentValues(field)
		if aerr != nil {
			resp.Data[alias] = nil
			resp.Errors = append(resp.Errors, fieldError(alias, aerr))
			continue
		}

		result, herr := handler(ctx, args)
		if herr != nil {
			resp.Data[alias] = nil
			resp.Errors = append(resp.Errors, fieldError(alias, herr))
			continue
		}

		completed, cerr := ex.completeValue(result, field.SelectionSet)
		if cerr != nil {
			resp.Data[alias] = nil
			resp.Errors = append(resp.Errors, fieldError(alias, cerr))
			continue
		}
		resp.Data[alias] = completed
	}

	return resp
}

// coerceVariables resolves the operation's variable definitions against
// the provided values, applying defaults and checking required ones.
func coerceVariables(op *ast.OperationDefinition, provided map[string]interface{}) (map[string]interface{}, *gqlerror.Error) {
	vars := map[string]interface{}{}
	for _, vd := range op.VariableDefinitions {
		if v, ok := provided[vd.Variable]; ok {
			vars[vd.Variable] = v
			continue
		}
		if vd.DefaultValue != nil {
			v, err := vd.DefaultValue.Value(nil)
			if err != nil {
				return nil, gqlerror.Errorf("default for variable $%s: %s", vd.Variable, err)
			}
			vars[vd.Variable] = v
			continue
		}
		if vd.Type.NonNull {
			return nil, gqlerror.Errorf("variable $%s is required", vd.Variable)
		}
	}
	return vars, nil
}

// execution carries the per-request document and variables through field
// collection and value completion.
type execution struct {
	doc  *ast.QueryDocument
	vars map[string]interface{}
}

// collectFields flattens a selection set into fields, resolving inline
// fragments and fragment spreads whose type condition matches.
func (ex *execution) collectFields(sels ast.SelectionSet, typeName string) []*ast.Field {
	var fields []*ast.Field
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ast.Field:
			fields = append(fields, s)
		case *ast.InlineFragment:
			if s.TypeCondition == "" || s.TypeCondition == typeName {
				fields = append(fields, ex.collectFields(s.SelectionSet, typeName)...)
			}
		case *ast.FragmentSpread:
			frag := ex.doc.Fragments.ForName(s.Name)
			if frag != nil && (frag.TypeCondition == "" || frag.TypeCondition == typeName) {
				fields = append(fields, ex.collectFields(frag.SelectionSet, typeName)...)
			}
		}
	}
	return fields
}

// argumentValues evaluates a field's arguments against the variables.
func (ex *execution) argumentValues(field *ast.Field) (map[string]interface{}, *gqlerror.Error) {
	args := map[string]interface{}{}
	for _, a := range field.Arguments {
		v, err := a.Value.Value(ex.vars)
		if err != nil {
			return nil, gqlerror.Errorf("argument %q: %s", a.Name, err)
		}
		if v != nil {
			args[a.Name] = v
		}
	}
	return args, nil
}

// completeValue projects a handler result through the selection set.
// Derived fields (a person's address) are synthesized here, at
// serialization time.
func (ex *execution) completeValue(val interface{}, sels ast.SelectionSet) (interface{}, *gqlerror.Error) {
	if val == nil {
		return nil, nil
	}

	typeName, fields, ok := objectFields(val)
	if ok {
		return ex.completeObject(typeName, fields, sels)
	}

	switch v := val.(type) {
	case []*contact.Person:
		items := make([]interface{}, len(v))
		for i, p := range v {
			items[i] = p
		}
		return ex.completeValue(items, sels)
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			completed, err := ex.completeValue(item, sels)
			if err != nil {
				return nil, err
			}
			out = append(out, completed)
		}
		return out, nil
	case int, int64, string, bool, float64:
		return v, nil
	default:
		return nil, gqlerror.Errorf("cannot serialize value of type %T", val)
	}
}

// completeObject resolves the selected fields of one object.
func (ex *execution) completeObject(typeName string, fields fieldSource, sels ast.SelectionSet) (interface{}, *gqlerror.Error) {
	out := map[string]interface{}{}
	for _, field := range ex.collectFields(sels, typeName) {
		alias := field.Alias
		if alias == "" {
			alias = field.Name
		}

		if field.Name == "__typename" {
			out[alias] = typeName
			continue
		}

		raw, ok := fields(field.Name)
		if !ok {
			return nil, gqlerror.Errorf("unknown field %q on type %s", field.Name, typeName)
		}
		completed, err := ex.completeValue(raw, field.SelectionSet)
		if err != nil {
			return nil, err
		}
		out[alias] = completed
	}
	return out, nil
}

// fieldError attaches the response path to a handler failure.
func fieldError(alias string, err *gqlerror.Error) *gqlerror.Error {
	if err.Path == nil {
		err.Path = ast.Path{ast.PathName(alias)}
	}
	if err.Message == "" {
		err.Message = fmt.Sprintf("field %q failed", alias)
	}
	return err
}
